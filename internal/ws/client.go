package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	maxMsgSize = 16 * 1024
)

type ClientKind string

const (
	KindCustomer ClientKind = "customer"
	KindVendor   ClientKind = "vendor"
)

type Client struct {
	kind ClientKind
	key  string // user id for customers, shop id for vendors
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
}

func NewCustomerClient(userID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		kind: KindCustomer,
		key:  userID,
		conn: conn,
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func NewVendorClient(shopID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		kind: KindVendor,
		key:  shopID,
		conn: conn,
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func (c *Client) SendRaw(b []byte) {
	select {
	case c.send <- b:
	default:
		// slow consumer, drop the connection instead of queueing forever
		_ = c.conn.Close()
	}
}

func (c *Client) readPump() {
	defer func() {
		if c.kind == KindVendor {
			c.hub.UnregisterShop(c.key, c)
		} else {
			c.hub.UnregisterUser(c.key, c)
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// inbound messages are ignored, the read keeps the connection alive
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}
