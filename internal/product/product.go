package product

import (
	"context"
	"errors"

	"localmart/internal/structs"
	"localmart/pkg/logger"
	productRepo "localmart/pkg/repository/postgres/product_repo"
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
		ProductRepo productRepo.Repo
		ShopRepo    shopRepo.Repo
		Logger      logger.Logger
	}

	Service interface {
		Create(ctx context.Context, userID string, req structs.CreateProduct) (structs.Product, error)
		GetByID(ctx context.Context, id string) (structs.Product, error)
		GetList(ctx context.Context, req structs.GetListProductRequest) (structs.GetListProductResponse, error)
		Patch(ctx context.Context, userID string, req structs.PatchProduct) error
		Delete(ctx context.Context, userID, id string) error
	}

	service struct {
		productRepo productRepo.Repo
		shopRepo    shopRepo.Repo
		logger      logger.Logger
	}
)

func New(p Params) Service {
	return &service{
		productRepo: p.ProductRepo,
		shopRepo:    p.ShopRepo,
		logger:      p.Logger,
	}
}

// ownShop checks the shop belongs to userID. Vendors can only manage
// products in their own shop.
func (s service) ownShop(ctx context.Context, userID, shopID string) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if shop.UserID != userID {
		return structs.ErrForbidden
	}
	return nil
}

func (s service) Create(ctx context.Context, userID string, req structs.CreateProduct) (structs.Product, error) {
	if err := s.ownShop(ctx, userID, req.ShopID); err != nil {
		return structs.Product{}, err
	}

	resp, err := s.productRepo.Create(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "->productRepo.Create", zap.Error(err))
		return structs.Product{}, err
	}
	return resp, nil
}

func (s service) GetByID(ctx context.Context, id string) (structs.Product, error) {
	resp, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			return structs.Product{}, err
		}
		s.logger.Error(ctx, "->productRepo.GetByID", zap.Error(err))
		return structs.Product{}, err
	}
	return resp, nil
}

func (s service) GetList(ctx context.Context, req structs.GetListProductRequest) (structs.GetListProductResponse, error) {
	resp, err := s.productRepo.GetList(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "->productRepo.GetList", zap.Error(err))
		return structs.GetListProductResponse{}, err
	}
	return resp, nil
}

func (s service) Patch(ctx context.Context, userID string, req structs.PatchProduct) error {
	product, err := s.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := s.ownShop(ctx, userID, product.ShopID); err != nil {
		return err
	}

	rowsAffected, err := s.productRepo.Patch(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "->productRepo.Patch", zap.Error(err))
		return err
	}
	if rowsAffected == 0 {
		return structs.ErrNoRowsAffected
	}
	return nil
}

func (s service) Delete(ctx context.Context, userID, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ownShop(ctx, userID, product.ShopID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "->productRepo.Delete", zap.Error(err))
		return err
	}
	return nil
}
