// Package nearby proxies the Google Places nearby search and folds the
// results into the shop catalogue as place-sourced stubs.
package nearby

import (
	"context"
	"fmt"

	"localmart/internal/structs"
	"localmart/pkg/cache"
	"localmart/pkg/config"
	"localmart/pkg/logger"
	shopRepo "localmart/pkg/repository/postgres/shop_repo"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

const sourcePlaces = "places"

type (
	Params struct {
		fx.In
		Logger   logger.Logger
		Config   config.IConfig
		Cache    cache.ICache
		ShopRepo shopRepo.Repo
	}

	Service interface {
		Search(ctx context.Context, req structs.NearbyRequest) (structs.NearbyResponse, error)
	}

	service struct {
		logger   logger.Logger
		cache    cache.ICache
		places   *placesClient
		shopRepo shopRepo.Repo
	}
)

func New(p Params) Service {
	return &service{
		logger:   p.Logger,
		cache:    p.Cache,
		places:   newPlacesClient(p.Config, p.Logger),
		shopRepo: p.ShopRepo,
	}
}

// cacheKey buckets coordinates to three decimals (about 110 meters) so
// repeated lookups from the same block share one upstream call.
func cacheKey(req structs.NearbyRequest) string {
	return fmt.Sprintf("nearby.%.3f.%.3f.%d", req.Latitude, req.Longitude, req.RadiusM)
}

func (s service) Search(ctx context.Context, req structs.NearbyRequest) (structs.NearbyResponse, error) {
	key := cacheKey(req)

	// A miss fails to decode, so a hit with zero shops is still a hit:
	// empty upstream answers are cached and served like any other.
	var cached structs.NearbyResponse
	if err := s.cache.GetObj(key, &cached); err == nil {
		return cached, nil
	}

	shops, err := s.places.NearbySearch(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "->places.NearbySearch", zap.Error(err))
		return structs.NearbyResponse{}, err
	}

	for _, shop := range shops {
		if err := s.shopRepo.UpsertPlace(ctx, shop, sourcePlaces); err != nil {
			s.logger.Error(ctx, "->shopRepo.UpsertPlace", zap.Error(err), zap.String("place_id", shop.PlaceID))
		}
	}

	resp := structs.NearbyResponse{Shops: shops}
	if err := s.cache.SaveObj(key, resp); err != nil {
		s.logger.Warn(ctx, "failed to cache nearby response", zap.Error(err))
	}
	return resp, nil
}
