package orderrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"localmart/internal/structs"
	"localmart/pkg/db"
	"localmart/pkg/logger"

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
		Create(ctx context.Context, order structs.Order) (structs.Order, error)
		GetByID(ctx context.Context, id string) (structs.Order, error)
		GetList(ctx context.Context, req structs.GetListOrderRequest) (structs.GetListOrderResponse, error)
		UpdateStatus(ctx context.Context, req structs.UpdateOrderStatus) error
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

func (r *repo) Create(ctx context.Context, order structs.Order) (structs.Order, error) {
	r.logger.Info(ctx, "Create order", zap.String("user_id", order.UserID), zap.String("shop_id", order.ShopID))

	order.ID = uuid.NewString()

	items, err := json.Marshal(order.Items)
	if err != nil {
		return order, fmt.Errorf("marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (
			id,
			user_id,
			shop_id,
			items,
			total_amount,
			delivery_type,
			delivery_address,
			delivery_fee,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(ctx, query,
		order.ID,
		order.UserID,
		order.ShopID,
		items,
		order.TotalAmount,
		order.DeliveryType,
		order.DeliveryAddress,
		order.DeliveryFee,
		order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.logger.Error(ctx, "failed to create order", zap.Error(err))
		return order, fmt.Errorf("create order failed: %w", err)
	}

	return order, nil
}

const orderColumns = `
	o.id,
	o.user_id,
	o.shop_id,
	s.name,
	o.items,
	o.total_amount,
	o.delivery_type,
	COALESCE(o.delivery_address, ''),
	o.delivery_fee,
	o.status,
	o.created_at,
	o.updated_at
`

func (r *repo) scanOrder(ctx context.Context, row pgx.Row) (structs.Order, error) {
	var (
		order structs.Order
		items []byte
	)
	if err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ShopID,
		&order.ShopName,
		&items,
		&order.TotalAmount,
		&order.DeliveryType,
		&order.DeliveryAddress,
		&order.DeliveryFee,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return order, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		r.logger.Warn(ctx, "corrupt order items json", zap.String("order_id", order.ID), zap.Error(err))
		order.Items = nil
	}
	return order, nil
}

func (r *repo) GetByID(ctx context.Context, id string) (structs.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN shops s ON s.id = o.shop_id
		WHERE o.id = $1
	`

	order, err := r.scanOrder(ctx, r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order, structs.ErrNotFound
		}
		r.logger.Error(ctx, "failed to get order by id", zap.Error(err))
		return order, err
	}
	return order, nil
}

func (r *repo) GetList(ctx context.Context, req structs.GetListOrderRequest) (resp structs.GetListOrderResponse, err error) {
	var (
		filter = " WHERE 1=1 "
		args   []interface{}
	)

	if req.UserID != "" {
		args = append(args, req.UserID)
		filter += fmt.Sprintf(" AND o.user_id = $%d ", len(args))
	}
	if req.ShopID != "" {
		args = append(args, req.ShopID)
		filter += fmt.Sprintf(" AND o.shop_id = $%d ", len(args))
	}
	if req.Status != "" {
		args = append(args, req.Status)
		filter += fmt.Sprintf(" AND o.status = $%d ", len(args))
	}

	countQuery := `SELECT COUNT(1) FROM orders o` + filter
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&resp.Count); err != nil {
		r.logger.Error(ctx, "failed to count orders", zap.Error(err))
		return resp, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, req.Offset)
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN shops s ON s.id = o.shop_id` + filter +
		fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error(ctx, "failed to list orders", zap.Error(err))
		return resp, err
	}
	defer rows.Close()

	for rows.Next() {
		order, err := r.scanOrder(ctx, rows)
		if err != nil {
			r.logger.Error(ctx, "err on rows.Scan", zap.Error(err))
			return resp, err
		}
		resp.Orders = append(resp.Orders, order)
	}
	if err := rows.Err(); err != nil {
		return resp, err
	}

	return resp, nil
}

func (r *repo) UpdateStatus(ctx context.Context, req structs.UpdateOrderStatus) error {
	r.logger.Info(ctx, "Update order status", zap.String("order_id", req.OrderID), zap.String("status", req.Status))

	query := `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`
	result, err := r.db.Exec(ctx, query, req.Status, req.OrderID)
	if err != nil {
		r.logger.Error(ctx, "failed to update order status", zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return structs.ErrNotFound
	}
	return nil
}
