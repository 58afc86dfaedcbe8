package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"localmart/internal/structs"
	"localmart/pkg/logger"
	"localmart/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProductRepo struct {
	products map[string]structs.Product
}

func (m *mockProductRepo) Create(_ context.Context, req structs.CreateProduct) (structs.Product, error) {
	p := structs.Product{ID: "generated", ShopID: req.ShopID, Name: req.Name, Price: req.Price}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (structs.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return structs.Product{}, structs.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepo) GetList(context.Context, structs.GetListProductRequest) (structs.GetListProductResponse, error) {
	return structs.GetListProductResponse{}, nil
}

func (m *mockProductRepo) Patch(context.Context, structs.PatchProduct) (int64, error) {
	return 0, nil
}

func (m *mockProductRepo) Delete(context.Context, string) error { return nil }

type mockShopRepo struct {
	shops map[string]structs.Shop
}

func (m *mockShopRepo) Create(_ context.Context, userID string, req structs.CreateShop) (structs.Shop, error) {
	s := structs.Shop{ID: "generated", UserID: userID, Name: req.Name}
	m.shops[s.ID] = s
	return s, nil
}

func (m *mockShopRepo) GetByID(_ context.Context, id string) (structs.Shop, error) {
	s, ok := m.shops[id]
	if !ok {
		return structs.Shop{}, structs.ErrNotFound
	}
	return s, nil
}

func (m *mockShopRepo) GetByUserID(context.Context, string) (structs.Shop, error) {
	return structs.Shop{}, structs.ErrNotFound
}

func (m *mockShopRepo) GetList(context.Context, structs.GetListShopRequest) ([]structs.Shop, int64, error) {
	return nil, 0, nil
}

func (m *mockShopRepo) Patch(context.Context, structs.PatchShop) (int64, error) { return 0, nil }

func (m *mockShopRepo) Delete(context.Context, string) error { return nil }

func (m *mockShopRepo) UpsertPlace(context.Context, structs.NearbyShop, string) error { return nil }

// fakeKV is an in-memory stand-in for the cart key-value store.
type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Save(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		f.data[key] = string(b)
	}
	return nil
}

func (f *fakeKV) SaveObj(ctx context.Context, key string, value any, dur time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	return true, f.Save(ctx, key, value, dur)
}

func (f *fakeKV) Find(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redis.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeKV) FindObj(ctx context.Context, key string, value any) error {
	v, err := f.Find(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(v), value)
}

func newTestService(kv *fakeKV) Service {
	return New(Params{
		ProductRepo: &mockProductRepo{products: map[string]structs.Product{
			"p1": {ID: "p1", ShopID: "s1", Name: "Milk", Price: 50},
			"p2": {ID: "p2", ShopID: "s1", Name: "Bread", Price: 30},
			"p3": {ID: "p3", ShopID: "s2", Name: "Soap", Price: 20},
		}},
		ShopRepo: &mockShopRepo{shops: map[string]structs.Shop{
			"s1": {ID: "s1", Name: "ShopA"},
			"s2": {ID: "s2", Name: "ShopB"},
		}},
		KV:     kv,
		Logger: logger.New("error"),
	})
}

func TestServiceAddItem(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeKV())

	info, err := svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p1"})

	require.NoError(t, err)
	require.Len(t, info.Lines, 1)
	assert.EqualValues(t, 1, info.Lines[0].Quantity)
	assert.Equal(t, "s1", info.ShopID)
	assert.Equal(t, "ShopA", info.ShopName)
	assert.EqualValues(t, 50, info.TotalAmount)
}

func TestServiceAddUnknownProduct(t *testing.T) {
	svc := newTestService(newFakeKV())

	_, err := svc.AddItem(context.Background(), "u1", structs.AddCartItem{ProductID: "nope"})

	assert.ErrorIs(t, err, structs.ErrNotFound)
}

func TestServiceCrossShopConflict(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	svc := newTestService(kv)

	_, err := svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p1"})
	require.NoError(t, err)

	// Without replace the add aborts and nothing is persisted.
	info, err := svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p3"})
	assert.ErrorIs(t, err, structs.ErrCrossShopConflict)
	require.Len(t, info.Lines, 1)
	assert.Equal(t, "p1", info.Lines[0].ProductID)

	info, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "s1", info.ShopID)

	// Replace grants the confirmation and swaps the cart to the new shop.
	info, err = svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p3", Replace: true})
	require.NoError(t, err)
	require.Len(t, info.Lines, 1)
	assert.Equal(t, "p3", info.Lines[0].ProductID)
	assert.Equal(t, "s2", info.ShopID)
}

func TestServicePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()

	svc := newTestService(kv)
	_, err := svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p1"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p1"})
	require.NoError(t, err)

	// A fresh service over the same storage sees the same cart.
	restored := newTestService(kv)
	info, err := restored.Get(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, info.Lines, 1)
	assert.EqualValues(t, 2, info.Lines[0].Quantity)
	assert.EqualValues(t, 100, info.TotalAmount)
}

func TestServiceCorruptSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.data["cart.u1"] = "{not json"

	svc := newTestService(kv)
	info, err := svc.Get(ctx, "u1")

	require.NoError(t, err)
	assert.Empty(t, info.Lines)
	assert.Zero(t, info.TotalItems)
}

func TestServiceInconsistentSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	// JSON-valid snapshot whose line belongs to another shop than the
	// document claims.
	kv.data["cart.u1"] = `{"shop_id":"s2","lines":[{"id":"l1","product_id":"p1","name":"Milk","unit_price":50,"quantity":1,"shop_id":"s1","shop_name":"ShopA"}]}`

	svc := newTestService(kv)

	info, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, info.Lines)

	// Adding from s2 starts a fresh cart, it must not merge the foreign line.
	info, err = svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p3"})
	require.NoError(t, err)
	require.Len(t, info.Lines, 1)
	assert.Equal(t, "p3", info.Lines[0].ProductID)
	assert.Equal(t, "s2", info.ShopID)
	for _, line := range info.Lines {
		assert.Equal(t, info.ShopID, line.ShopID)
	}
}

func TestServiceSetQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeKV())

	_, err := svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p1"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p2"})
	require.NoError(t, err)

	info, err := svc.SetQuantity(ctx, "u1", structs.PatchCartItem{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 6, info.TotalItems)

	info, err = svc.SetQuantity(ctx, "u1", structs.PatchCartItem{ProductID: "p2", Quantity: 0})
	require.NoError(t, err)
	require.Len(t, info.Lines, 1)
	assert.Equal(t, "p1", info.Lines[0].ProductID)

	info, err = svc.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, info.Lines)
	assert.Empty(t, info.ShopID)
}

func TestServiceClear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeKV())

	_, err := svc.AddItem(ctx, "u1", structs.AddCartItem{ProductID: "p1"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "u1"))

	info, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, info.Lines)
	assert.Zero(t, info.TotalAmount)
}
