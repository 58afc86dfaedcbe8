package shop

import (
	"context"
	"errors"

	"localmart/internal/geo"
	"localmart/internal/structs"
	"localmart/pkg/config"
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
		ShopRepo      shopRepo.Repo
		FavouriteRepo favouriteRepo.Repo
		Config        config.IConfig
		Logger        logger.Logger
	}

	Service interface {
		Create(ctx context.Context, userID string, req structs.CreateShop) (structs.Shop, error)
		GetByID(ctx context.Context, id string) (structs.Shop, error)
		GetMine(ctx context.Context, userID string) (structs.Shop, error)
		GetList(ctx context.Context, userID string, req structs.GetListShopRequest) (structs.GetListShopResponse, error)
		Patch(ctx context.Context, userID string, req structs.PatchShop) error
		Delete(ctx context.Context, userID, id string) error
	}

	service struct {
		shopRepo           shopRepo.Repo
		favouriteRepo      favouriteRepo.Repo
		logger             logger.Logger
		defaultDeliveryFee int64
	}
)

func New(p Params) Service {
	return &service{
		shopRepo:           p.ShopRepo,
		favouriteRepo:      p.FavouriteRepo,
		logger:             p.Logger,
		defaultDeliveryFee: p.Config.GetInt64("order.delivery_fee"),
	}
}

// Create opens the vendor's shop. Omitted delivery options default to both
// handoff types offered with the configured delivery fee.
func (s service) Create(ctx context.Context, userID string, req structs.CreateShop) (structs.Shop, error) {
	if req.DeliveryFee == nil {
		fee := s.defaultDeliveryFee
		req.DeliveryFee = &fee
	}
	if req.DeliveryAvailable == nil {
		offered := true
		req.DeliveryAvailable = &offered
	}
	if req.PickupAvailable == nil {
		offered := true
		req.PickupAvailable = &offered
	}

	resp, err := s.shopRepo.Create(ctx, userID, req)
	if err != nil {
		if errors.Is(err, structs.ErrUniqueViolation) {
			return structs.Shop{}, err
		}
		s.logger.Error(ctx, "->shopRepo.Create", zap.Error(err))
		return structs.Shop{}, err
	}
	return resp, nil
}

func (s service) GetByID(ctx context.Context, id string) (structs.Shop, error) {
	resp, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			return structs.Shop{}, err
		}
		s.logger.Error(ctx, "->shopRepo.GetByID", zap.Error(err))
		return structs.Shop{}, err
	}
	return resp, nil
}

func (s service) GetMine(ctx context.Context, userID string) (structs.Shop, error) {
	resp, err := s.shopRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			return structs.Shop{}, err
		}
		s.logger.Error(ctx, "->shopRepo.GetByUserID", zap.Error(err))
		return structs.Shop{}, err
	}
	return resp, nil
}

// GetList returns shops decorated with the caller's favourite marks and,
// when an origin is supplied, sorted nearest first. Shops without
// coordinates keep their stored order after all located ones.
func (s service) GetList(ctx context.Context, userID string, req structs.GetListShopRequest) (structs.GetListShopResponse, error) {
	shops, count, err := s.shopRepo.GetList(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "->shopRepo.GetList", zap.Error(err))
		return structs.GetListShopResponse{}, err
	}

	var favs map[string]struct{}
	if userID != "" {
		favs, err = s.favouriteRepo.GetShopIDs(ctx, userID)
		if err != nil {
			s.logger.Error(ctx, "->favouriteRepo.GetShopIDs", zap.Error(err))
			favs = nil
		}
	}

	ranked := make([]*structs.RankedShop, 0, len(shops))
	for _, shop := range shops {
		_, isFav := favs[shop.ID]
		ranked = append(ranked, &structs.RankedShop{Shop: shop, IsFavourite: isFav})
	}
	ranked = geo.RankByDistance(req.Origin, ranked)

	resp := structs.GetListShopResponse{Count: count, Shops: make([]structs.RankedShop, 0, len(ranked))}
	for _, shop := range ranked {
		resp.Shops = append(resp.Shops, *shop)
	}
	return resp, nil
}

func (s service) Patch(ctx context.Context, userID string, req structs.PatchShop) error {
	shop, err := s.shopRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if shop.UserID != userID {
		return structs.ErrForbidden
	}

	rowsAffected, err := s.shopRepo.Patch(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "->shopRepo.Patch", zap.Error(err))
		return err
	}
	if rowsAffected == 0 {
		return structs.ErrNoRowsAffected
	}
	return nil
}

func (s service) Delete(ctx context.Context, userID, id string) error {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if shop.UserID != userID {
		return structs.ErrForbidden
	}

	if err := s.shopRepo.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "->shopRepo.Delete", zap.Error(err))
		return err
	}
	return nil
}
