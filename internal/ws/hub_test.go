package ws

import (
	"encoding/json"
	"testing"

	"localmart/internal/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func takeEvent(t *testing.T, c *Client) structs.Event {
	t.Helper()

	select {
	case b := <-c.send:
		var evt structs.Event
		require.NoError(t, json.Unmarshal(b, &evt))
		return evt
	default:
		t.Fatal("no event queued")
		return structs.Event{}
	}
}

func TestBroadcastToShopReachesAllShopClients(t *testing.T) {
	hub := NewHub()

	first := NewVendorClient("shop-1", nil, hub)
	second := NewVendorClient("shop-1", nil, hub)
	other := NewVendorClient("shop-2", nil, hub)
	hub.RegisterShop("shop-1", first)
	hub.RegisterShop("shop-1", second)
	hub.RegisterShop("shop-2", other)

	hub.BroadcastToShop("shop-1", structs.Event{Type: structs.EventOrderCreated})

	for _, c := range []*Client{first, second} {
		evt := takeEvent(t, c)
		assert.Equal(t, structs.EventOrderCreated, evt.Type)
		assert.False(t, evt.TS.IsZero())
	}
	assert.Empty(t, other.send)
}

func TestBroadcastToUserIsScopedToKey(t *testing.T) {
	hub := NewHub()

	mine := NewCustomerClient("u1", nil, hub)
	theirs := NewCustomerClient("u2", nil, hub)
	hub.RegisterUser("u1", mine)
	hub.RegisterUser("u2", theirs)

	hub.BroadcastToUser("u1", structs.Event{Type: structs.EventOrderPatch})

	evt := takeEvent(t, mine)
	assert.Equal(t, structs.EventOrderPatch, evt.Type)
	assert.Empty(t, theirs.send)
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()

	c := NewCustomerClient("u1", nil, hub)
	hub.RegisterUser("u1", c)
	hub.UnregisterUser("u1", c)

	hub.BroadcastToUser("u1", structs.Event{Type: structs.EventOrderPatch})
	assert.Empty(t, c.send)
}

func TestBroadcastWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewHub()

	// must not panic or block
	hub.BroadcastToShop("nobody", structs.Event{Type: structs.EventOrderCreated})
	hub.BroadcastToUser("nobody", structs.Event{Type: structs.EventOrderPatch})
}
