package order

import (
	"context"
	"testing"
	"time"

	"localmart/internal/cart"
	"localmart/internal/structs"
	"localmart/internal/ws"
	"localmart/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	orders map[string]structs.Order
	nextID string
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: map[string]structs.Order{}, nextID: "o1"}
}

func (m *mockOrderRepo) Create(ctx context.Context, order structs.Order) (structs.Order, error) {
	order.ID = m.nextID
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	m.orders[order.ID] = order
	return order, nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (structs.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return structs.Order{}, structs.ErrNotFound
	}
	return order, nil
}

func (m *mockOrderRepo) GetList(ctx context.Context, req structs.GetListOrderRequest) (structs.GetListOrderResponse, error) {
	var resp structs.GetListOrderResponse
	for _, order := range m.orders {
		if req.UserID != "" && order.UserID != req.UserID {
			continue
		}
		if req.ShopID != "" && order.ShopID != req.ShopID {
			continue
		}
		if req.Status != "" && order.Status != req.Status {
			continue
		}
		resp.Orders = append(resp.Orders, order)
		resp.Count++
	}
	return resp, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, req structs.UpdateOrderStatus) error {
	order, ok := m.orders[req.OrderID]
	if !ok {
		return structs.ErrNotFound
	}
	order.Status = req.Status
	order.UpdatedAt = time.Now()
	m.orders[req.OrderID] = order
	return nil
}

type mockShopRepo struct {
	shops map[string]structs.Shop
}

func (m *mockShopRepo) Create(ctx context.Context, userID string, req structs.CreateShop) (structs.Shop, error) {
	return structs.Shop{}, nil
}

func (m *mockShopRepo) GetByID(ctx context.Context, id string) (structs.Shop, error) {
	shop, ok := m.shops[id]
	if !ok {
		return structs.Shop{}, structs.ErrNotFound
	}
	return shop, nil
}

func (m *mockShopRepo) GetByUserID(ctx context.Context, userID string) (structs.Shop, error) {
	for _, shop := range m.shops {
		if shop.UserID == userID {
			return shop, nil
		}
	}
	return structs.Shop{}, structs.ErrNotFound
}

func (m *mockShopRepo) GetList(ctx context.Context, req structs.GetListShopRequest) ([]structs.Shop, int64, error) {
	return nil, 0, nil
}

func (m *mockShopRepo) Patch(ctx context.Context, req structs.PatchShop) (int64, error) {
	return 0, nil
}

func (m *mockShopRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *mockShopRepo) UpsertPlace(ctx context.Context, place structs.NearbyShop, source string) error {
	return nil
}

type mockCart struct {
	info    structs.CartInfo
	cleared bool
}

func (m *mockCart) Get(ctx context.Context, userID string) (structs.CartInfo, error) {
	return m.info, nil
}

func (m *mockCart) AddItem(ctx context.Context, userID string, req structs.AddCartItem) (structs.CartInfo, error) {
	return m.info, nil
}

func (m *mockCart) SetQuantity(ctx context.Context, userID string, req structs.PatchCartItem) (structs.CartInfo, error) {
	return m.info, nil
}

func (m *mockCart) RemoveItem(ctx context.Context, userID, productID string) (structs.CartInfo, error) {
	return m.info, nil
}

func (m *mockCart) Clear(ctx context.Context, userID string) error {
	m.cleared = true
	m.info = structs.CartInfo{}
	return nil
}

type noopNotify struct{}

func (noopNotify) OrderCreated(ctx context.Context, order structs.Order)       {}
func (noopNotify) OrderStatusChanged(ctx context.Context, order structs.Order) {}

var _ cart.Service = (*mockCart)(nil)

func newTestService(t *testing.T, crt *mockCart, orders *mockOrderRepo, shops *mockShopRepo) Service {
	t.Helper()

	return New(Params{
		OrderRepo: orders,
		ShopRepo:  shops,
		Cart:      crt,
		Notify:    noopNotify{},
		Hub:       ws.NewHub(),
		Logger:    logger.New("error"),
	})
}

func filledCart() *mockCart {
	return &mockCart{info: structs.CartInfo{
		Lines: []structs.CartLine{
			{ProductID: "p1", Name: "Bread", UnitPrice: 50, Quantity: 2, ShopID: "s1", ShopName: "Bakery"},
			{ProductID: "p2", Name: "Milk", UnitPrice: 30, Quantity: 1, ShopID: "s1", ShopName: "Bakery"},
		},
		ShopID:      "s1",
		ShopName:    "Bakery",
		TotalItems:  3,
		TotalAmount: 130,
	}}
}

func vendorShops() *mockShopRepo {
	return &mockShopRepo{shops: map[string]structs.Shop{
		"s1": {
			ID: "s1", UserID: "vendor1", Name: "Bakery",
			DeliveryFee: 1500, DeliveryAvailable: true, PickupAvailable: true,
		},
	}}
}

func TestCheckoutPickup(t *testing.T) {
	crt := filledCart()
	orders := newMockOrderRepo()
	svc := newTestService(t, crt, orders, vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	require.NoError(t, err)

	assert.Equal(t, structs.OrderStatusPending, order.Status)
	assert.Equal(t, structs.DeliveryTypePickup, order.DeliveryType)
	assert.Equal(t, int64(130), order.TotalAmount)
	assert.Zero(t, order.DeliveryFee)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Bread", order.Items[0].Name)
	assert.True(t, crt.cleared)
}

func TestCheckoutDeliveryAddsFee(t *testing.T) {
	svc := newTestService(t, filledCart(), newMockOrderRepo(), vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{
		DeliveryType:    "delivery",
		DeliveryAddress: "12 Main st",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1500), order.DeliveryFee)
	assert.Equal(t, int64(130+1500), order.TotalAmount)
	assert.Equal(t, "12 Main st", order.DeliveryAddress)
}

func TestCheckoutRejectsUnofferedDeliveryType(t *testing.T) {
	shops := &mockShopRepo{shops: map[string]structs.Shop{
		"s1": {ID: "s1", UserID: "vendor1", Name: "Bakery", PickupAvailable: true},
	}}
	svc := newTestService(t, filledCart(), newMockOrderRepo(), shops)

	_, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{
		DeliveryType:    "delivery",
		DeliveryAddress: "12 Main st",
	})
	assert.ErrorIs(t, err, structs.ErrBadRequest)

	_, err = svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	assert.NoError(t, err)
}

func TestCheckoutUsesShopDeliveryFee(t *testing.T) {
	shops := &mockShopRepo{shops: map[string]structs.Shop{
		"s1": {
			ID: "s1", UserID: "vendor1", Name: "Bakery",
			DeliveryFee: 700, DeliveryAvailable: true, PickupAvailable: true,
		},
	}}
	svc := newTestService(t, filledCart(), newMockOrderRepo(), shops)

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{
		DeliveryType:    "delivery",
		DeliveryAddress: "12 Main st",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(700), order.DeliveryFee)
	assert.Equal(t, int64(130+700), order.TotalAmount)
}

func TestCheckoutDeliveryRequiresAddress(t *testing.T) {
	svc := newTestService(t, filledCart(), newMockOrderRepo(), vendorShops())

	_, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "delivery"})
	assert.ErrorIs(t, err, structs.ErrBadRequest)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := newTestService(t, &mockCart{}, newMockOrderRepo(), vendorShops())

	_, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	assert.ErrorIs(t, err, structs.ErrCartEmpty)
}

func TestCheckoutBadDeliveryType(t *testing.T) {
	svc := newTestService(t, filledCart(), newMockOrderRepo(), vendorShops())

	_, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "teleport"})
	assert.ErrorIs(t, err, structs.ErrBadRequest)
}

func TestUpdateStatusHappyPath(t *testing.T) {
	crt := filledCart()
	orders := newMockOrderRepo()
	svc := newTestService(t, crt, orders, vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	require.NoError(t, err)

	for _, status := range []string{"CONFIRMED", "PREPARING", "READY", "DELIVERED"} {
		order, err = svc.UpdateStatus(context.Background(), "vendor1", structs.UpdateOrderStatus{
			OrderID: order.ID,
			Status:  status,
		})
		require.NoError(t, err)
		assert.Equal(t, status, order.Status)
	}
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newTestService(t, filledCart(), orders, vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "vendor1", structs.UpdateOrderStatus{
		OrderID: order.ID,
		Status:  "READY",
	})
	assert.ErrorIs(t, err, structs.ErrInvalidTransition)
}

func TestUpdateStatusRejectsTerminal(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newTestService(t, filledCart(), orders, vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "vendor1", structs.UpdateOrderStatus{OrderID: order.ID, Status: "CANCELLED"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "vendor1", structs.UpdateOrderStatus{OrderID: order.ID, Status: "CONFIRMED"})
	assert.ErrorIs(t, err, structs.ErrInvalidTransition)
}

func TestUpdateStatusForbiddenForStranger(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newTestService(t, filledCart(), orders, vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "someone-else", structs.UpdateOrderStatus{
		OrderID: order.ID,
		Status:  "CONFIRMED",
	})
	assert.ErrorIs(t, err, structs.ErrForbidden)
}

func TestCustomerCanCancelPendingOnly(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newTestService(t, filledCart(), orders, vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	require.NoError(t, err)

	// the customer may not drive the normal lifecycle
	_, err = svc.UpdateStatus(context.Background(), "u1", structs.UpdateOrderStatus{OrderID: order.ID, Status: "CONFIRMED"})
	assert.ErrorIs(t, err, structs.ErrForbidden)

	order, err = svc.UpdateStatus(context.Background(), "u1", structs.UpdateOrderStatus{OrderID: order.ID, Status: "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, structs.OrderStatusCancelled, order.Status)
}

func TestGetByIDVisibility(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newTestService(t, filledCart(), orders, vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "u1", order.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "vendor1", order.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "stranger", order.ID)
	assert.ErrorIs(t, err, structs.ErrForbidden)
}

func TestPickupQR(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newTestService(t, filledCart(), orders, vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{DeliveryType: "pickup"})
	require.NoError(t, err)

	png, err := svc.PickupQR(context.Background(), "u1", order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// png magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestPickupQRRejectsDelivery(t *testing.T) {
	orders := newMockOrderRepo()
	svc := newTestService(t, filledCart(), orders, vendorShops())

	order, err := svc.Checkout(context.Background(), "u1", structs.CreateOrder{
		DeliveryType:    "delivery",
		DeliveryAddress: "12 Main st",
	})
	require.NoError(t, err)

	_, err = svc.PickupQR(context.Background(), "u1", order.ID)
	assert.ErrorIs(t, err, structs.ErrBadRequest)
}
