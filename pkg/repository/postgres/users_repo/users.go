package usersrepo

import (
	"context"
	"errors"
	"fmt"

	"localmart/internal/structs"
	"localmart/pkg/db"
	"localmart/pkg/logger"

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
		Create(ctx context.Context, user structs.User) (structs.User, error)
		GetByEmail(ctx context.Context, email string) (structs.User, error)
		GetByID(ctx context.Context, id string) (structs.User, error)
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

func (r *repo) Create(ctx context.Context, user structs.User) (structs.User, error) {
	r.logger.Info(ctx, "Create user", zap.String("email", user.Email))

	user.ID = uuid.NewString()

	query := `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, user.ID, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return user, structs.ErrUniqueViolation
		}
		r.logger.Error(ctx, "failed to create user", zap.Error(err))
		return user, fmt.Errorf("create user failed: %w", err)
	}

	return user, nil
}

func (r *repo) GetByEmail(ctx context.Context, email string) (structs.User, error) {
	var user structs.User

	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, structs.ErrNotFound
		}
		r.logger.Error(ctx, "failed to get user by email", zap.Error(err))
		return user, err
	}

	return user, nil
}

func (r *repo) GetByID(ctx context.Context, id string) (structs.User, error) {
	var user structs.User

	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, structs.ErrNotFound
		}
		r.logger.Error(ctx, "failed to get user by id", zap.Error(err))
		return user, err
	}

	return user, nil
}
