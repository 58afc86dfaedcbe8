package profilerepo

import (
	"context"
	"errors"
	"fmt"

	"localmart/internal/structs"
	"localmart/pkg/db"
	"localmart/pkg/logger"
	"localmart/pkg/utils"

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
		Create(ctx context.Context, profile structs.Profile) (structs.Profile, error)
		GetByUserID(ctx context.Context, userID string) (structs.Profile, error)
		Patch(ctx context.Context, req structs.PatchProfile) error
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

func (r *repo) Create(ctx context.Context, profile structs.Profile) (structs.Profile, error) {
	r.logger.Info(ctx, "Create profile", zap.String("user_id", profile.UserID))

	query := `
		INSERT INTO profiles (user_id, full_name, user_type, phone, telegram_chat_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.FullName,
		profile.UserType,
		profile.Phone,
		profile.TelegramChatID,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		r.logger.Error(ctx, "failed to create profile", zap.Error(err))
		return profile, fmt.Errorf("create profile failed: %w", err)
	}

	return profile, nil
}

func (r *repo) GetByUserID(ctx context.Context, userID string) (structs.Profile, error) {
	var profile structs.Profile

	query := `
		SELECT user_id, full_name, user_type, COALESCE(phone, ''), telegram_chat_id, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.FullName,
		&profile.UserType,
		&profile.Phone,
		&profile.TelegramChatID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile, structs.ErrNotFound
		}
		r.logger.Error(ctx, "failed to get profile", zap.Error(err))
		return profile, err
	}

	return profile, nil
}

func (r *repo) Patch(ctx context.Context, req structs.PatchProfile) error {
	r.logger.Info(ctx, "Patch profile", zap.String("user_id", req.UserID))

	query := `UPDATE profiles SET updated_at = NOW() `
	params := map[string]interface{}{
		"user_id": req.UserID,
	}

	if req.FullName != nil {
		query += `, full_name = :full_name `
		params["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		query += `, phone = :phone `
		params["phone"] = *req.Phone
	}
	if req.TelegramChatID != nil {
		query += `, telegram_chat_id = :telegram_chat_id `
		params["telegram_chat_id"] = *req.TelegramChatID
	}

	query += ` WHERE user_id = :user_id`

	query, args := utils.ReplaceQueryParams(query, params)
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error(ctx, "failed to patch profile", zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return structs.ErrNoRowsAffected
	}
	return nil
}
