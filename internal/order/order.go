package order

import (
	"context"
	"errors"
	"fmt"

	"localmart/internal/cart"
	"localmart/internal/notify"
	"localmart/internal/structs"
	"localmart/internal/ws"
	"localmart/pkg/logger"
	orderRepo "localmart/pkg/repository/postgres/order_repo"
	shopRepo "localmart/pkg/repository/postgres/shop_repo"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Params struct {
		fx.In
		OrderRepo orderRepo.Repo
		ShopRepo  shopRepo.Repo
		Cart      cart.Service
		Notify    notify.Service
		Hub       *ws.Hub
		Logger    logger.Logger
	}

	Service interface {
		Checkout(ctx context.Context, userID string, req structs.CreateOrder) (structs.Order, error)
		GetByID(ctx context.Context, userID, id string) (structs.Order, error)
		GetListMine(ctx context.Context, userID string, req structs.GetListOrderRequest) (structs.GetListOrderResponse, error)
		GetListForShop(ctx context.Context, userID string, req structs.GetListOrderRequest) (structs.GetListOrderResponse, error)
		UpdateStatus(ctx context.Context, userID string, req structs.UpdateOrderStatus) (structs.Order, error)
		PickupQR(ctx context.Context, userID, id string) ([]byte, error)
	}

	service struct {
		orderRepo orderRepo.Repo
		shopRepo  shopRepo.Repo
		cart      cart.Service
		notify    notify.Service
		hub       *ws.Hub
		logger    logger.Logger
	}
)

func New(p Params) Service {
	return &service{
		orderRepo: p.OrderRepo,
		shopRepo:  p.ShopRepo,
		cart:      p.Cart,
		notify:    p.Notify,
		hub:       p.Hub,
		logger:    p.Logger,
	}
}

// Checkout freezes the caller's cart into a PENDING order and clears the
// cart. The chosen handoff type must be one the shop offers; the shop's
// delivery fee applies only to DELIVERY orders.
func (s service) Checkout(ctx context.Context, userID string, req structs.CreateOrder) (structs.Order, error) {
	deliveryType, err := structs.NormalizeDeliveryType(req.DeliveryType)
	if err != nil {
		return structs.Order{}, fmt.Errorf("%w: %v", structs.ErrBadRequest, err)
	}
	if deliveryType == structs.DeliveryTypeDelivery && req.DeliveryAddress == "" {
		return structs.Order{}, fmt.Errorf("%w: delivery address is required", structs.ErrBadRequest)
	}

	info, err := s.cart.Get(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "->cart.Get", zap.Error(err))
		return structs.Order{}, err
	}
	if len(info.Lines) == 0 {
		return structs.Order{}, structs.ErrCartEmpty
	}

	shop, err := s.shopRepo.GetByID(ctx, info.ShopID)
	if err != nil {
		s.logger.Error(ctx, "->shopRepo.GetByID", zap.Error(err))
		return structs.Order{}, err
	}
	if deliveryType == structs.DeliveryTypeDelivery && !shop.DeliveryAvailable {
		return structs.Order{}, fmt.Errorf("%w: shop does not offer delivery", structs.ErrBadRequest)
	}
	if deliveryType == structs.DeliveryTypePickup && !shop.PickupAvailable {
		return structs.Order{}, fmt.Errorf("%w: shop does not offer pickup", structs.ErrBadRequest)
	}

	order := structs.Order{
		UserID:       userID,
		ShopID:       info.ShopID,
		ShopName:     info.ShopName,
		TotalAmount:  info.TotalAmount,
		DeliveryType: deliveryType,
		Status:       structs.OrderStatusPending,
	}
	for _, line := range info.Lines {
		order.Items = append(order.Items, structs.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	if deliveryType == structs.DeliveryTypeDelivery {
		order.DeliveryAddress = req.DeliveryAddress
		order.DeliveryFee = shop.DeliveryFee
		order.TotalAmount += shop.DeliveryFee
	}

	order, err = s.orderRepo.Create(ctx, order)
	if err != nil {
		s.logger.Error(ctx, "->orderRepo.Create", zap.Error(err))
		return structs.Order{}, err
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		s.logger.Error(ctx, "->cart.Clear", zap.Error(err))
	}

	s.hub.BroadcastToShop(order.ShopID, structs.Event{
		Type:    structs.EventOrderCreated,
		Payload: structs.OrderCreatedPayload{Order: order},
	})
	go s.notify.OrderCreated(context.WithoutCancel(ctx), order)

	return order, nil
}

// GetByID is visible to the customer who placed the order and to the
// owner of the shop it was placed with.
func (s service) GetByID(ctx context.Context, userID, id string) (structs.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			return structs.Order{}, err
		}
		s.logger.Error(ctx, "->orderRepo.GetByID", zap.Error(err))
		return structs.Order{}, err
	}

	if order.UserID != userID {
		shop, err := s.shopRepo.GetByID(ctx, order.ShopID)
		if err != nil || shop.UserID != userID {
			return structs.Order{}, structs.ErrForbidden
		}
	}
	return order, nil
}

func (s service) GetListMine(ctx context.Context, userID string, req structs.GetListOrderRequest) (structs.GetListOrderResponse, error) {
	req.UserID = userID
	req.ShopID = ""

	resp, err := s.orderRepo.GetList(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "->orderRepo.GetList", zap.Error(err))
		return structs.GetListOrderResponse{}, err
	}
	return resp, nil
}

func (s service) GetListForShop(ctx context.Context, userID string, req structs.GetListOrderRequest) (structs.GetListOrderResponse, error) {
	shop, err := s.shopRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			return structs.GetListOrderResponse{}, structs.ErrForbidden
		}
		s.logger.Error(ctx, "->shopRepo.GetByUserID", zap.Error(err))
		return structs.GetListOrderResponse{}, err
	}

	req.UserID = ""
	req.ShopID = shop.ID

	resp, err := s.orderRepo.GetList(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "->orderRepo.GetList", zap.Error(err))
		return structs.GetListOrderResponse{}, err
	}
	return resp, nil
}

// UpdateStatus is vendor-driven. CANCELLED additionally stays open to the
// customer while the order is still PENDING.
func (s service) UpdateStatus(ctx context.Context, userID string, req structs.UpdateOrderStatus) (structs.Order, error) {
	status, err := structs.NormalizeOrderStatus(req.Status)
	if err != nil {
		return structs.Order{}, fmt.Errorf("%w: %v", structs.ErrBadRequest, err)
	}
	req.Status = status

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return structs.Order{}, err
	}

	shop, err := s.shopRepo.GetByID(ctx, order.ShopID)
	if err != nil {
		s.logger.Error(ctx, "->shopRepo.GetByID", zap.Error(err))
		return structs.Order{}, err
	}
	isVendor := shop.UserID == userID
	isOwnCancel := order.UserID == userID &&
		status == structs.OrderStatusCancelled && order.Status == structs.OrderStatusPending
	if !isVendor && !isOwnCancel {
		return structs.Order{}, structs.ErrForbidden
	}

	if !structs.CanTransitionOrder(order.Status, status) {
		return structs.Order{}, fmt.Errorf("%w: %s -> %s", structs.ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, req); err != nil {
		s.logger.Error(ctx, "->orderRepo.UpdateStatus", zap.Error(err))
		return structs.Order{}, err
	}

	order, err = s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return structs.Order{}, err
	}

	evt := structs.Event{
		Type: structs.EventOrderPatch,
		Payload: structs.OrderPatchPayload{
			ID:       order.ID,
			Status:   order.Status,
			UpdateAt: order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
	}
	s.hub.BroadcastToUser(order.UserID, evt)
	s.hub.BroadcastToShop(order.ShopID, evt)
	go s.notify.OrderStatusChanged(context.WithoutCancel(ctx), order)

	return order, nil
}

// PickupQR renders the order id as a PNG for the counter handoff. Only
// PICKUP orders have one.
func (s service) PickupQR(ctx context.Context, userID, id string) ([]byte, error) {
	order, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if order.DeliveryType != structs.DeliveryTypePickup {
		return nil, fmt.Errorf("%w: order is not a pickup order", structs.ErrBadRequest)
	}

	png, err := qrcode.Encode(order.ID, qrcode.Medium, 256)
	if err != nil {
		s.logger.Error(ctx, "failed to encode pickup qr", zap.Error(err))
		return nil, err
	}
	return png, nil
}
