package shop

import (
	"context"
	"testing"

	"localmart/internal/geo"
	"localmart/internal/structs"
	"localmart/pkg/config"
	"localmart/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockShopRepo struct {
	shops   []structs.Shop
	deleted []string
	patched []structs.PatchShop
}

func (m *mockShopRepo) Create(ctx context.Context, userID string, req structs.CreateShop) (structs.Shop, error) {
	s := structs.Shop{ID: "new", UserID: userID, Name: req.Name}
	if req.DeliveryFee != nil {
		s.DeliveryFee = *req.DeliveryFee
	}
	if req.DeliveryAvailable != nil {
		s.DeliveryAvailable = *req.DeliveryAvailable
	}
	if req.PickupAvailable != nil {
		s.PickupAvailable = *req.PickupAvailable
	}
	return s, nil
}

func (m *mockShopRepo) GetByID(ctx context.Context, id string) (structs.Shop, error) {
	for _, shop := range m.shops {
		if shop.ID == id {
			return shop, nil
		}
	}
	return structs.Shop{}, structs.ErrNotFound
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
	return m.shops, int64(len(m.shops)), nil
}

func (m *mockShopRepo) Patch(ctx context.Context, req structs.PatchShop) (int64, error) {
	m.patched = append(m.patched, req)
	return 1, nil
}

func (m *mockShopRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockShopRepo) UpsertPlace(ctx context.Context, place structs.NearbyShop, source string) error {
	return nil
}

type mockFavouriteRepo struct {
	ids map[string]struct{}
}

func (m *mockFavouriteRepo) Add(ctx context.Context, userID, shopID string) error    { return nil }
func (m *mockFavouriteRepo) Remove(ctx context.Context, userID, shopID string) error { return nil }
func (m *mockFavouriteRepo) Exists(ctx context.Context, userID, shopID string) (bool, error) {
	return false, nil
}

func (m *mockFavouriteRepo) GetShopIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return m.ids, nil
}

func (m *mockFavouriteRepo) ListShops(ctx context.Context, userID string) ([]structs.Shop, error) {
	return nil, nil
}

func coord(v float64) *float64 { return &v }

func seededShops() []structs.Shop {
	return []structs.Shop{
		{ID: "far", Name: "Far Market", Latitude: coord(41.40), Longitude: coord(69.40)},
		{ID: "unlocated", Name: "No Coords"},
		{ID: "near", Name: "Near Market", Latitude: coord(41.301), Longitude: coord(69.301)},
	}
}

func newTestService(t *testing.T, shops *mockShopRepo, favs *mockFavouriteRepo) Service {
	t.Helper()
	t.Setenv("ORDER_DELIVERY_FEE", "1500")

	return New(Params{
		ShopRepo:      shops,
		FavouriteRepo: favs,
		Config:        config.NewConfig(),
		Logger:        logger.New("error"),
	})
}

func TestCreateDefaultsDeliveryOptions(t *testing.T) {
	svc := newTestService(t, &mockShopRepo{}, &mockFavouriteRepo{})

	shop, err := svc.Create(context.Background(), "vendor1", structs.CreateShop{Name: "Bakery"})
	require.NoError(t, err)

	assert.EqualValues(t, 1500, shop.DeliveryFee)
	assert.True(t, shop.DeliveryAvailable)
	assert.True(t, shop.PickupAvailable)
}

func TestCreateKeepsExplicitDeliveryOptions(t *testing.T) {
	svc := newTestService(t, &mockShopRepo{}, &mockFavouriteRepo{})

	fee := int64(0)
	noDelivery := false
	shop, err := svc.Create(context.Background(), "vendor1", structs.CreateShop{
		Name:              "Counter Only",
		DeliveryFee:       &fee,
		DeliveryAvailable: &noDelivery,
	})
	require.NoError(t, err)

	assert.Zero(t, shop.DeliveryFee)
	assert.False(t, shop.DeliveryAvailable)
	assert.True(t, shop.PickupAvailable)
}

func TestGetListRanksByDistance(t *testing.T) {
	svc := newTestService(t, &mockShopRepo{shops: seededShops()}, &mockFavouriteRepo{})

	resp, err := svc.GetList(context.Background(), "u1", structs.GetListShopRequest{
		Origin: &geo.Coordinates{Latitude: 41.30, Longitude: 69.30},
	})
	require.NoError(t, err)
	require.Len(t, resp.Shops, 3)

	assert.Equal(t, "near", resp.Shops[0].ID)
	assert.Equal(t, "far", resp.Shops[1].ID)
	// shops without coordinates trail the located ones
	assert.Equal(t, "unlocated", resp.Shops[2].ID)

	require.NotNil(t, resp.Shops[0].DistanceKm)
	assert.Nil(t, resp.Shops[2].DistanceKm)
	assert.Less(t, *resp.Shops[0].DistanceKm, *resp.Shops[1].DistanceKm)
}

func TestGetListWithoutOriginKeepsStoredOrder(t *testing.T) {
	svc := newTestService(t, &mockShopRepo{shops: seededShops()}, &mockFavouriteRepo{})

	resp, err := svc.GetList(context.Background(), "", structs.GetListShopRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Shops, 3)

	assert.Equal(t, "far", resp.Shops[0].ID)
	assert.Equal(t, "unlocated", resp.Shops[1].ID)
	assert.Equal(t, "near", resp.Shops[2].ID)
	assert.Nil(t, resp.Shops[0].DistanceKm)
}

func TestGetListMarksFavourites(t *testing.T) {
	favs := &mockFavouriteRepo{ids: map[string]struct{}{"near": {}}}
	svc := newTestService(t, &mockShopRepo{shops: seededShops()}, favs)

	resp, err := svc.GetList(context.Background(), "u1", structs.GetListShopRequest{})
	require.NoError(t, err)

	marked := map[string]bool{}
	for _, shop := range resp.Shops {
		marked[shop.ID] = shop.IsFavourite
	}
	assert.True(t, marked["near"])
	assert.False(t, marked["far"])
}

func TestPatchRejectsForeignShop(t *testing.T) {
	repo := &mockShopRepo{shops: []structs.Shop{{ID: "s1", UserID: "owner"}}}
	svc := newTestService(t, repo, &mockFavouriteRepo{})

	err := svc.Patch(context.Background(), "intruder", structs.PatchShop{ID: "s1"})
	assert.ErrorIs(t, err, structs.ErrForbidden)
	assert.Empty(t, repo.patched)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := &mockShopRepo{shops: []structs.Shop{{ID: "s1", UserID: "owner"}}}
	svc := newTestService(t, repo, &mockFavouriteRepo{})

	err := svc.Delete(context.Background(), "intruder", "s1")
	assert.ErrorIs(t, err, structs.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), "owner", "s1"))
	assert.Equal(t, []string{"s1"}, repo.deleted)
}
