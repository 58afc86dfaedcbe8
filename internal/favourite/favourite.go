package favourite

import (
	"context"
	"errors"

	"localmart/internal/geo"
	"localmart/internal/structs"
	"localmart/pkg/logger"
	favouriteRepo "localmart/pkg/repository/postgres/favourite_repo"
	shopRepo "localmart/pkg/repository/postgres/shop_repo"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Params struct {
		fx.In
		FavouriteRepo favouriteRepo.Repo
		ShopRepo      shopRepo.Repo
		Logger        logger.Logger
	}

	Service interface {
		Toggle(ctx context.Context, userID, shopID string) (structs.ToggleFavouriteResult, error)
		GetList(ctx context.Context, userID string, origin *geo.Coordinates) (structs.GetListFavouriteResponse, error)
	}

	service struct {
		favouriteRepo favouriteRepo.Repo
		shopRepo      shopRepo.Repo
		logger        logger.Logger
	}
)

func New(p Params) Service {
	return &service{
		favouriteRepo: p.FavouriteRepo,
		shopRepo:      p.ShopRepo,
		logger:        p.Logger,
	}
}

// Toggle flips the favourite mark: marked becomes unmarked and back.
func (s service) Toggle(ctx context.Context, userID, shopID string) (structs.ToggleFavouriteResult, error) {
	result := structs.ToggleFavouriteResult{ShopID: shopID}

	if _, err := s.shopRepo.GetByID(ctx, shopID); err != nil {
		return result, err
	}

	exists, err := s.favouriteRepo.Exists(ctx, userID, shopID)
	if err != nil {
		s.logger.Error(ctx, "->favouriteRepo.Exists", zap.Error(err))
		return result, err
	}

	if exists {
		if err := s.favouriteRepo.Remove(ctx, userID, shopID); err != nil {
			s.logger.Error(ctx, "->favouriteRepo.Remove", zap.Error(err))
			return result, err
		}
		result.IsFavourite = false
		return result, nil
	}

	if err := s.favouriteRepo.Add(ctx, userID, shopID); err != nil {
		// a concurrent toggle already added it, treat as marked
		if errors.Is(err, structs.ErrUniqueViolation) {
			result.IsFavourite = true
			return result, nil
		}
		s.logger.Error(ctx, "->favouriteRepo.Add", zap.Error(err))
		return result, err
	}
	result.IsFavourite = true
	return result, nil
}

// GetList returns the caller's favourite shops, nearest first when an
// origin is supplied.
func (s service) GetList(ctx context.Context, userID string, origin *geo.Coordinates) (structs.GetListFavouriteResponse, error) {
	shops, err := s.favouriteRepo.ListShops(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "->favouriteRepo.ListShops", zap.Error(err))
		return structs.GetListFavouriteResponse{}, err
	}

	ranked := make([]*structs.RankedShop, 0, len(shops))
	for _, shop := range shops {
		ranked = append(ranked, &structs.RankedShop{Shop: shop, IsFavourite: true})
	}
	ranked = geo.RankByDistance(origin, ranked)

	resp := structs.GetListFavouriteResponse{Count: int64(len(ranked))}
	for _, shop := range ranked {
		resp.Shops = append(resp.Shops, *shop)
	}
	return resp, nil
}
