package structs

import (
	"fmt"
	"strings"
	"time"
)

const (
	DeliveryTypeDelivery = "DELIVERY"
	DeliveryTypePickup   = "PICKUP"

	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

func NormalizeDeliveryType(v string) (string, error) {
	s := strings.TrimSpace(strings.ToUpper(v))
	switch s {
	case "DELIVERY":
		return "DELIVERY", nil
	case "PICKUP":
		return "PICKUP", nil
	default:
		return "", fmt.Errorf("invalid deliveryType: %q", v)
	}
}

func NormalizeOrderStatus(v string) (string, error) {
	s := strings.TrimSpace(strings.ToUpper(v))
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("invalid order status: %q", v)
	}
}

// allowedTransitions is the vendor-driven order lifecycle. CANCELLED is
// reachable from any non-terminal state.
var allowedTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusDelivered, OrderStatusCancelled},
}

func CanTransitionOrder(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	ShopID          string      `json:"shop_id"`
	ShopName        string      `json:"shop_name,omitempty"`
	Items           []OrderItem `json:"items"`
	TotalAmount     int64       `json:"total_amount"`
	DeliveryType    string      `json:"delivery_type"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	DeliveryFee     int64       `json:"delivery_fee"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is a cart line frozen at checkout time.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CreateOrder struct {
	DeliveryType    string `json:"delivery_type"`
	DeliveryAddress string `json:"delivery_address"`
}

type UpdateOrderStatus struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type GetListOrderRequest struct {
	ShopID string `json:"shop_id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
	Offset int64  `json:"offset"`
	Limit  int64  `json:"limit"`
}

type GetListOrderResponse struct {
	Count  int64   `json:"count"`
	Orders []Order `json:"orders"`
}
