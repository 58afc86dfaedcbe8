package cart

import (
	"context"
	"encoding/json"
	"errors"

	"localmart/internal/structs"
	"localmart/pkg/logger"
	"localmart/pkg/redis"
	productRepo "localmart/pkg/repository/postgres/product_repo"
	shopRepo "localmart/pkg/repository/postgres/shop_repo"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

const storageKeyPrefix = "cart."

type (
	Params struct {
		fx.In
		ProductRepo productRepo.Repo
		ShopRepo    shopRepo.Repo
		KV          redis.Client
		Logger      logger.Logger
	}

	Service interface {
		Get(ctx context.Context, userID string) (structs.CartInfo, error)
		AddItem(ctx context.Context, userID string, req structs.AddCartItem) (structs.CartInfo, error)
		SetQuantity(ctx context.Context, userID string, req structs.PatchCartItem) (structs.CartInfo, error)
		RemoveItem(ctx context.Context, userID, productID string) (structs.CartInfo, error)
		Clear(ctx context.Context, userID string) error
	}

	service struct {
		productRepo productRepo.Repo
		shopRepo    shopRepo.Repo
		kv          redis.Client
		logger      logger.Logger
	}
)

func New(p Params) Service {
	return &service{
		productRepo: p.ProductRepo,
		shopRepo:    p.ShopRepo,
		kv:          p.KV,
		logger:      p.Logger,
	}
}

// load restores the user's cart from storage. A missing or corrupt document
// yields an empty cart, never an error: a broken snapshot must not take the
// session down.
func (s *service) load(ctx context.Context, userID string) *Cart {
	raw, err := s.kv.Find(ctx, storageKeyPrefix+userID)
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			s.logger.Warn(ctx, "cart snapshot unavailable, starting empty", zap.Error(err))
		}
		return Empty()
	}

	var doc structs.CartDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		s.logger.Warn(ctx, "corrupt cart snapshot discarded", zap.String("user_id", userID), zap.Error(err))
		return Empty()
	}

	c, err := FromDocument(doc)
	if err != nil {
		s.logger.Warn(ctx, "corrupt cart snapshot discarded", zap.String("user_id", userID), zap.Error(err))
		return Empty()
	}
	return c
}

func (s *service) persist(ctx context.Context, userID string, c *Cart) error {
	b, err := json.Marshal(c.Document())
	if err != nil {
		return err
	}
	if err := s.kv.Save(ctx, storageKeyPrefix+userID, b, 0); err != nil {
		s.logger.Error(ctx, "->kv.Save", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Get(ctx context.Context, userID string) (structs.CartInfo, error) {
	return s.load(ctx, userID).Info(), nil
}

func (s *service) AddItem(ctx context.Context, userID string, req structs.AddCartItem) (structs.CartInfo, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error(ctx, "->productRepo.GetByID", zap.Error(err))
		return structs.CartInfo{}, err
	}

	shop, err := s.shopRepo.GetByID(ctx, product.ShopID)
	if err != nil {
		s.logger.Error(ctx, "->shopRepo.GetByID", zap.Error(err))
		return structs.CartInfo{}, err
	}

	c := s.load(ctx, userID)

	confirm := Deny
	if req.Replace {
		confirm = Approve
	}
	if !c.Add(product, shop, confirm) {
		// Declined confirmation: state untouched; the caller re-asks the user.
		return c.Info(), structs.ErrCrossShopConflict
	}

	if err := s.persist(ctx, userID, c); err != nil {
		return structs.CartInfo{}, err
	}
	return c.Info(), nil
}

func (s *service) SetQuantity(ctx context.Context, userID string, req structs.PatchCartItem) (structs.CartInfo, error) {
	c := s.load(ctx, userID)
	c.SetQuantity(req.ProductID, req.Quantity)

	if err := s.persist(ctx, userID, c); err != nil {
		return structs.CartInfo{}, err
	}
	return c.Info(), nil
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) (structs.CartInfo, error) {
	c := s.load(ctx, userID)
	c.Remove(productID)

	if err := s.persist(ctx, userID, c); err != nil {
		return structs.CartInfo{}, err
	}
	return c.Info(), nil
}

func (s *service) Clear(ctx context.Context, userID string) error {
	c := s.load(ctx, userID)
	c.Clear()
	return s.persist(ctx, userID, c)
}
