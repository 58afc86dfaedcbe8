package productrepo

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
	"github.com/jackc/pgx/v5"
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
		Create(ctx context.Context, req structs.CreateProduct) (structs.Product, error)
		GetByID(ctx context.Context, id string) (structs.Product, error)
		GetList(ctx context.Context, req structs.GetListProductRequest) (structs.GetListProductResponse, error)
		Patch(ctx context.Context, req structs.PatchProduct) (int64, error)
		Delete(ctx context.Context, id string) error
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

const productColumns = `
	id,
	shop_id,
	name,
	description,
	img_url,
	price,
	stock,
	is_active,
	created_at,
	updated_at
`

func scanProduct(row pgx.Row, p *structs.Product) error {
	return row.Scan(
		&p.ID,
		&p.ShopID,
		&p.Name,
		&p.Description,
		&p.ImgUrl,
		&p.Price,
		&p.Stock,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *repo) Create(ctx context.Context, req structs.CreateProduct) (resp structs.Product, err error) {
	r.logger.Info(ctx, "Create product", zap.Any("req", req))

	query := `
		INSERT INTO products (id, shop_id, name, description, img_url, price, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns

	err = scanProduct(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		req.ShopID,
		req.Name,
		req.Description,
		req.ImgUrl,
		req.Price,
		req.Stock,
		req.IsActive,
	), &resp)
	if err != nil {
		r.logger.Error(ctx, "failed to create product", zap.Error(err))
		return resp, err
	}
	return resp, nil
}

func (r *repo) GetByID(ctx context.Context, id string) (structs.Product, error) {
	var p structs.Product

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	err := scanProduct(r.db.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, structs.ErrNotFound
		}
		r.logger.Error(ctx, "failed to get product by id", zap.Error(err))
		return p, err
	}
	return p, nil
}

func (r *repo) GetList(ctx context.Context, req structs.GetListProductRequest) (resp structs.GetListProductResponse, err error) {
	var (
		filter = " WHERE 1=1 "
		args   []interface{}
	)

	if req.ShopID != "" {
		args = append(args, req.ShopID)
		filter += fmt.Sprintf(" AND shop_id = $%d ", len(args))
	}
	if req.Search != "" {
		args = append(args, "%"+strings.ToLower(req.Search)+"%")
		filter += fmt.Sprintf(" AND LOWER(name) LIKE $%d ", len(args))
	}

	countQuery := `SELECT COUNT(1) FROM products` + filter
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&resp.Count); err != nil {
		r.logger.Error(ctx, "failed to count products", zap.Error(err))
		return resp, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, req.Offset)
	query := `SELECT ` + productColumns + ` FROM products` + filter +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error(ctx, "failed to list products", zap.Error(err))
		return resp, err
	}
	defer rows.Close()

	for rows.Next() {
		var p structs.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error(ctx, "err on rows.Scan", zap.Error(err))
			return resp, err
		}
		resp.Products = append(resp.Products, p)
	}
	if err := rows.Err(); err != nil {
		return resp, err
	}

	return resp, nil
}

func (r *repo) Patch(ctx context.Context, req structs.PatchProduct) (int64, error) {
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
	if req.ImgUrl != nil {
		setValues = append(setValues, "img_url = :img_url")
		params["img_url"] = *req.ImgUrl
	}
	if req.Price != nil {
		setValues = append(setValues, "price = :price")
		params["price"] = *req.Price
	}
	if req.Stock != nil {
		setValues = append(setValues, "stock = :stock")
		params["stock"] = *req.Stock
	}
	if req.IsActive != nil {
		setValues = append(setValues, "is_active = :is_active")
		params["is_active"] = *req.IsActive
	}
	if len(setValues) == 0 {
		return 0, structs.ErrBadRequest
	}
	setValues = append(setValues, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = :id
	`, strings.Join(setValues, ", "))

	query, args := utils.ReplaceQueryParams(query, params)
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error(ctx, "error executing product update", zap.Error(err))
		return 0, err
	}

	rowsAffected := result.RowsAffected()
	if rowsAffected == 0 {
		return 0, structs.ErrNotFound
	}
	return rowsAffected, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	r.logger.Info(ctx, "Delete product", zap.String("id", id))

	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error(ctx, "failed to delete product", zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return structs.ErrNotFound
	}
	return nil
}
