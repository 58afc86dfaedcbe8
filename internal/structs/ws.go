package structs

import "time"

type EventType string

const (
	EventOrderCreated EventType = "order.created"
	EventOrderPatch   EventType = "order.patch" // status-only update
)

type Event struct {
	Type    EventType `json:"type"`
	TS      time.Time `json:"ts"`
	Payload any       `json:"payload,omitempty"`
}

type OrderCreatedPayload struct {
	Order Order `json:"order"`
}

type OrderPatchPayload struct {
	ID       string `json:"id"`
	Status   string `json:"status,omitempty"`
	UpdateAt string `json:"updateAt,omitempty"`
}
