package user

import (
	"context"
	"errors"
	"strings"

	"localmart/internal/structs"
	"localmart/pkg/logger"
	profileRepo "localmart/pkg/repository/postgres/profile_repo"
	usersRepo "localmart/pkg/repository/postgres/users_repo"
	"localmart/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

type (
	Service interface {
		SignUp(ctx context.Context, req structs.SignUpRequest) (structs.AuthResponse, error)
		Login(ctx context.Context, req structs.LoginRequest) (structs.AuthResponse, error)
		GetMe(ctx context.Context, userID string) (structs.AuthResponse, error)
	}

	Params struct {
		fx.In
		Logger      logger.Logger
		UsersRepo   usersRepo.Repo
		ProfileRepo profileRepo.Repo
	}

	service struct {
		logger      logger.Logger
		usersRepo   usersRepo.Repo
		profileRepo profileRepo.Repo
	}
)

func New(p Params) Service {
	return &service{
		logger:      p.Logger,
		usersRepo:   p.UsersRepo,
		profileRepo: p.ProfileRepo,
	}
}

func (s service) SignUp(ctx context.Context, req structs.SignUpRequest) (structs.AuthResponse, error) {
	userType := strings.ToLower(strings.TrimSpace(req.UserType))
	switch userType {
	case "":
		userType = structs.UserTypeCustomer
	case structs.UserTypeCustomer, structs.UserTypeVendor:
	default:
		return structs.AuthResponse{}, structs.ErrBadRequest
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.logger.Error(ctx, "failed to hash password", zap.Error(err))
		return structs.AuthResponse{}, err
	}

	user, err := s.usersRepo.Create(ctx, structs.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, structs.ErrUniqueViolation) {
			return structs.AuthResponse{}, err
		}
		s.logger.Error(ctx, "->usersRepo.Create", zap.Error(err))
		return structs.AuthResponse{}, err
	}

	profile, err := s.profileRepo.Create(ctx, structs.Profile{
		UserID:   user.ID,
		FullName: req.FullName,
		UserType: userType,
	})
	if err != nil {
		s.logger.Error(ctx, "->profileRepo.Create", zap.Error(err))
		return structs.AuthResponse{}, err
	}

	token, err := utils.GenerateJWT(user.ID, profile.UserType)
	if err != nil {
		s.logger.Error(ctx, "failed to generate jwt", zap.Error(err))
		return structs.AuthResponse{}, err
	}

	return structs.AuthResponse{Token: token, User: user, Profile: profile}, nil
}

func (s service) Login(ctx context.Context, req structs.LoginRequest) (structs.AuthResponse, error) {
	user, err := s.usersRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			return structs.AuthResponse{}, structs.ErrInvalidPassword
		}
		s.logger.Error(ctx, "->usersRepo.GetByEmail", zap.Error(err))
		return structs.AuthResponse{}, err
	}

	if !utils.CompareInBcrypt(user.PasswordHash, req.Password) {
		return structs.AuthResponse{}, structs.ErrInvalidPassword
	}

	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "->profileRepo.GetByUserID", zap.Error(err))
		return structs.AuthResponse{}, err
	}

	token, err := utils.GenerateJWT(user.ID, profile.UserType)
	if err != nil {
		s.logger.Error(ctx, "failed to generate jwt", zap.Error(err))
		return structs.AuthResponse{}, err
	}

	return structs.AuthResponse{Token: token, User: user, Profile: profile}, nil
}

func (s service) GetMe(ctx context.Context, userID string) (structs.AuthResponse, error) {
	user, err := s.usersRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, structs.ErrNotFound) {
			return structs.AuthResponse{}, err
		}
		s.logger.Error(ctx, "->usersRepo.GetByID", zap.Error(err))
		return structs.AuthResponse{}, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, structs.ErrNotFound) {
		s.logger.Error(ctx, "->profileRepo.GetByUserID", zap.Error(err))
		return structs.AuthResponse{}, err
	}

	return structs.AuthResponse{User: user, Profile: profile}, nil
}
