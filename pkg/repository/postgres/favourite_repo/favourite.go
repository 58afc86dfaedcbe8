package favouriterepo

import (
	"context"
	"errors"

	"localmart/internal/structs"
	"localmart/pkg/db"
	"localmart/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Params struct {
		fx.In
		Logger logger.Logger
		DB     db.Querier
	}

	Repo interface {
		Add(ctx context.Context, userID, shopID string) error
		Remove(ctx context.Context, userID, shopID string) error
		Exists(ctx context.Context, userID, shopID string) (bool, error)
		GetShopIDs(ctx context.Context, userID string) (map[string]struct{}, error)
		ListShops(ctx context.Context, userID string) ([]structs.Shop, error)
	}

	repo struct {
		logger logger.Logger
		db     db.Querier
	}
)

func New(p Params) Repo {
	return &repo{
		logger: p.Logger,
		db:     p.DB,
	}
}

func (r *repo) Add(ctx context.Context, userID, shopID string) error {
	r.logger.Info(ctx, "Add favourite", zap.String("user_id", userID), zap.String("shop_id", shopID))

	query := `
		INSERT INTO favourites (id, user_id, shop_id) VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, uuid.NewString(), userID, shopID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.UniqueViolation == pgErr.Code {
			return structs.ErrUniqueViolation
		}
		r.logger.Error(ctx, "failed to add favourite", zap.Error(err))
		return err
	}
	return nil
}

func (r *repo) Remove(ctx context.Context, userID, shopID string) error {
	r.logger.Info(ctx, "Remove favourite", zap.String("user_id", userID), zap.String("shop_id", shopID))

	query := `
		DELETE FROM favourites WHERE user_id = $1 AND shop_id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, shopID)
	if err != nil {
		r.logger.Error(ctx, "failed to remove favourite", zap.Error(err))
		return err
	}
	return nil
}

func (r *repo) Exists(ctx context.Context, userID, shopID string) (bool, error) {
	var exists bool

	query := `
		SELECT EXISTS(SELECT 1 FROM favourites WHERE user_id = $1 AND shop_id = $2)
	`
	if err := r.db.QueryRow(ctx, query, userID, shopID).Scan(&exists); err != nil {
		r.logger.Error(ctx, "failed to check favourite", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *repo) GetShopIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	query := `
		SELECT shop_id FROM favourites WHERE user_id = $1
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error(ctx, "failed to list favourite ids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	ids := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (r *repo) ListShops(ctx context.Context, userID string) ([]structs.Shop, error) {
	query := `
		SELECT
			s.id,
			COALESCE(s.user_id::text, ''),
			s.name,
			s.description,
			s.location,
			s.category,
			s.img_url,
			s.latitude,
			s.longitude,
			s.source,
			s.created_at,
			s.updated_at
		FROM favourites f
		JOIN shops s ON s.id = f.shop_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error(ctx, "failed to list favourite shops", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var shops []structs.Shop
	for rows.Next() {
		var s structs.Shop
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Name,
			&s.Description,
			&s.Location,
			&s.Category,
			&s.ImgUrl,
			&s.Latitude,
			&s.Longitude,
			&s.Source,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			r.logger.Error(ctx, "err on rows.Scan", zap.Error(err))
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}
