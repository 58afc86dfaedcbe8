package shoprepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"localmart/internal/structs"
	"localmart/pkg/db"
	"localmart/pkg/logger"
	"localmart/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
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
		Create(ctx context.Context, userID string, req structs.CreateShop) (structs.Shop, error)
		GetByID(ctx context.Context, id string) (structs.Shop, error)
		GetByUserID(ctx context.Context, userID string) (structs.Shop, error)
		GetList(ctx context.Context, req structs.GetListShopRequest) ([]structs.Shop, int64, error)
		Patch(ctx context.Context, req structs.PatchShop) (int64, error)
		Delete(ctx context.Context, id string) error
		UpsertPlace(ctx context.Context, place structs.NearbyShop, source string) error
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

const shopColumns = `
	id,
	COALESCE(user_id::text, ''),
	name,
	description,
	location,
	category,
	img_url,
	latitude,
	longitude,
	source,
	delivery_fee,
	delivery_available,
	pickup_available,
	created_at,
	updated_at
`

func scanShop(row pgx.Row, s *structs.Shop) error {
	return row.Scan(
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
		&s.DeliveryFee,
		&s.DeliveryAvailable,
		&s.PickupAvailable,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func (r *repo) Create(ctx context.Context, userID string, req structs.CreateShop) (resp structs.Shop, err error) {
	r.logger.Info(ctx, "Create shop", zap.String("user_id", userID), zap.Any("req", req))

	query := `
		INSERT INTO shops (id, user_id, name, description, location, category, img_url, latitude, longitude, source,
			delivery_fee, delivery_available, pickup_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'vendor', $10, $11, $12)
		RETURNING ` + shopColumns

	err = scanShop(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		userID,
		req.Name,
		req.Description,
		req.Location,
		req.Category,
		req.ImgUrl,
		req.Latitude,
		req.Longitude,
		req.DeliveryFee,
		req.DeliveryAvailable,
		req.PickupAvailable,
	), &resp)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.UniqueViolation == pgErr.Code {
			return resp, structs.ErrUniqueViolation
		}
		r.logger.Error(ctx, "failed to create shop", zap.Error(err))
		return resp, err
	}
	return resp, nil
}

func (r *repo) GetByID(ctx context.Context, id string) (structs.Shop, error) {
	var s structs.Shop

	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = $1`

	err := scanShop(r.db.QueryRow(ctx, query, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, structs.ErrNotFound
		}
		r.logger.Error(ctx, "failed to get shop by id", zap.Error(err))
		return s, err
	}
	return s, nil
}

func (r *repo) GetByUserID(ctx context.Context, userID string) (structs.Shop, error) {
	var s structs.Shop

	query := `SELECT ` + shopColumns + ` FROM shops WHERE user_id = $1`

	err := scanShop(r.db.QueryRow(ctx, query, userID), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, structs.ErrNotFound
		}
		r.logger.Error(ctx, "failed to get shop by user id", zap.Error(err))
		return s, err
	}
	return s, nil
}

func (r *repo) GetList(ctx context.Context, req structs.GetListShopRequest) ([]structs.Shop, int64, error) {
	var (
		shops  []structs.Shop
		count  int64
		filter = " WHERE 1=1 "
		args   []interface{}
	)

	if req.Search != "" {
		args = append(args, "%"+strings.ToLower(req.Search)+"%")
		filter += fmt.Sprintf(" AND LOWER(name) LIKE $%d ", len(args))
	}
	if req.Category != "" {
		args = append(args, req.Category)
		filter += fmt.Sprintf(" AND category = $%d ", len(args))
	}

	countQuery := `SELECT COUNT(1) FROM shops` + filter
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		r.logger.Error(ctx, "failed to count shops", zap.Error(err))
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, req.Offset)
	query := `SELECT ` + shopColumns + ` FROM shops` + filter +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error(ctx, "failed to list shops", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var s structs.Shop
		if err := scanShop(rows, &s); err != nil {
			r.logger.Error(ctx, "err on rows.Scan", zap.Error(err))
			return nil, 0, err
		}
		shops = append(shops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return shops, count, nil
}

func (r *repo) Patch(ctx context.Context, req structs.PatchShop) (int64, error) {
	setValues := []string{}
	params := map[string]interface{}{
		"id": req.ID,
	}

	if req.Name != nil {
		setValues = append(setValues, "name = :name")
		params["name"] = *req.Name
	}
	if req.Description != nil {
		setValues = append(setValues, "description = :description")
		params["description"] = *req.Description
	}
	if req.Location != nil {
		setValues = append(setValues, "location = :location")
		params["location"] = *req.Location
	}
	if req.Category != nil {
		setValues = append(setValues, "category = :category")
		params["category"] = *req.Category
	}
	if req.ImgUrl != nil {
		setValues = append(setValues, "img_url = :img_url")
		params["img_url"] = *req.ImgUrl
	}
	if req.Latitude != nil {
		setValues = append(setValues, "latitude = :latitude")
		params["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		setValues = append(setValues, "longitude = :longitude")
		params["longitude"] = *req.Longitude
	}
	if req.DeliveryFee != nil {
		setValues = append(setValues, "delivery_fee = :delivery_fee")
		params["delivery_fee"] = *req.DeliveryFee
	}
	if req.DeliveryAvailable != nil {
		setValues = append(setValues, "delivery_available = :delivery_available")
		params["delivery_available"] = *req.DeliveryAvailable
	}
	if req.PickupAvailable != nil {
		setValues = append(setValues, "pickup_available = :pickup_available")
		params["pickup_available"] = *req.PickupAvailable
	}
	if len(setValues) == 0 {
		return 0, structs.ErrBadRequest
	}
	setValues = append(setValues, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE shops
		SET %s
		WHERE id = :id
	`, strings.Join(setValues, ", "))

	query, args := utils.ReplaceQueryParams(query, params)
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error(ctx, "error executing shop update", zap.Error(err))
		return 0, err
	}

	rowsAffected := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, structs.ErrNotFound
	}
	return rowsAffected, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	r.logger.Info(ctx, "Delete shop", zap.String("id", id))

	result, err := r.db.Exec(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		r.logger.Error(ctx, "failed to delete shop", zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return structs.ErrNotFound
	}
	return nil
}

// UpsertPlace seeds a stub shop from the places lookup. Repeated lookups for
// the same place update the stub instead of duplicating it.
func (r *repo) UpsertPlace(ctx context.Context, place structs.NearbyShop, source string) error {
	query := `
		INSERT INTO shops (id, user_id, name, description, location, category, img_url, latitude, longitude, source, place_id)
		VALUES ($1, NULL, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (place_id) WHERE place_id IS NOT NULL DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			location = EXCLUDED.location,
			category = EXCLUDED.category,
			img_url = EXCLUDED.img_url,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		uuid.NewString(),
		place.Name,
		place.Description,
		place.Location,
		place.Category,
		place.ImgUrl,
		place.Latitude,
		place.Longitude,
		source,
		place.PlaceID,
	)
	if err != nil {
		r.logger.Error(ctx, "failed to upsert place shop", zap.Error(err))
		return err
	}
	return nil
}
