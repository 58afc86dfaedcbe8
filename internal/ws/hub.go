package ws

import (
	"encoding/json"
	"sync"
	"time"

	"localmart/internal/structs"
)

// Hub fans order events out to connected sockets. Vendors subscribe by
// shop id, customers by their own user id.
type Hub struct {
	mu    sync.RWMutex
	shops map[string]map[*Client]struct{} // shop id -> set(client)
	users map[string]map[*Client]struct{} // user id -> set(client)
}

func NewHub() *Hub {
	return &Hub{
		shops: make(map[string]map[*Client]struct{}),
		users: make(map[string]map[*Client]struct{}),
	}
}

func register(m map[string]map[*Client]struct{}, key string, c *Client) {
	set, ok := m[key]
	if !ok {
		set = make(map[*Client]struct{})
		m[key] = set
	}
	set[c] = struct{}{}
}

func unregister(m map[string]map[*Client]struct{}, key string, c *Client) {
	set, ok := m[key]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(m, key)
	}
}

func (h *Hub) RegisterShop(shopID string, c *Client) {
	h.mu.Lock()
	register(h.shops, shopID, c)
	h.mu.Unlock()
}

func (h *Hub) UnregisterShop(shopID string, c *Client) {
	h.mu.Lock()
	unregister(h.shops, shopID, c)
	h.mu.Unlock()
}

func (h *Hub) RegisterUser(userID string, c *Client) {
	h.mu.Lock()
	register(h.users, userID, c)
	h.mu.Unlock()
}

func (h *Hub) UnregisterUser(userID string, c *Client) {
	h.mu.Lock()
	unregister(h.users, userID, c)
	h.mu.Unlock()
}

func (h *Hub) broadcast(m map[string]map[*Client]struct{}, key string, evt structs.Event) {
	h.mu.RLock()
	set, ok := m[key]
	if !ok || len(set) == 0 {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	evt.TS = time.Now().UTC()
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	for _, c := range clients {
		c.SendRaw(b)
	}
}

func (h *Hub) BroadcastToShop(shopID string, evt structs.Event) {
	h.broadcast(h.shops, shopID, evt)
}

func (h *Hub) BroadcastToUser(userID string, evt structs.Event) {
	h.broadcast(h.users, userID, evt)
}
