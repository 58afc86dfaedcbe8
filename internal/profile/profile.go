package profile

import (
	"context"
	"errors"

	"localmart/internal/structs"
	"localmart/pkg/logger"
	profileRepo "localmart/pkg/repository/postgres/profile_repo"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Params struct {
		fx.In
		ProfileRepo profileRepo.Repo
		Logger      logger.Logger
	}

	Service interface {
		GetByUserID(ctx context.Context, userID string) (structs.Profile, error)
		Patch(ctx context.Context, req structs.PatchProfile) (structs.Profile, error)
	}

	service struct {
		profileRepo profileRepo.Repo
		logger      logger.Logger
	}
)

func New(p Params) Service {
	return &service{
		profileRepo: p.ProfileRepo,
		logger:      p.Logger,
	}
}

func (s service) GetByUserID(ctx context.Context, userID string) (structs.Profile, error) {
	resp, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			return structs.Profile{}, err
		}
		s.logger.Error(ctx, "->profileRepo.GetByUserID", zap.Error(err))
		return structs.Profile{}, err
	}
	return resp, nil
}

func (s service) Patch(ctx context.Context, req structs.PatchProfile) (structs.Profile, error) {
	if err := s.profileRepo.Patch(ctx, req); err != nil {
		if errors.Is(err, structs.ErrNoRowsAffected) {
			return structs.Profile{}, structs.ErrNotFound
		}
		s.logger.Error(ctx, "->profileRepo.Patch", zap.Error(err))
		return structs.Profile{}, err
	}
	return s.GetByUserID(ctx, req.UserID)
}
