package service

import (
	"context"
	"errors"

	usererrors "careconnect/internal/users/errors"
	"careconnect/internal/users/repository"
	"careconnect/internal/users/validator"
	"careconnect/pkg/config"
	apperrors "careconnect/pkg/errors"
	"careconnect/pkg/model"
	"careconnect/pkg/sanitizer"
)

type UserService interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, userValidator *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: userValidator,
		cfg:       cfg,
	}
}

func (s *userService) Create(ctx context.Context, user *model.User) error {
	user.ID = ""
	user.Name = sanitizer.SanitizeText(user.Name)
	user.Email = sanitizer.SanitizeEmail(user.Email)
	user.MedicalFlags = sanitizer.SanitizeFlagMap(user.MedicalFlags)

	if err := s.validator.Validate(user); err != nil {
		s.cfg.Log.Warn("User validation failed", "error", err)
		return apperrors.Validation("Invalid user data", map[string]any{"error": err.Error()})
	}

	if user.LinkedAccountID != "" {
		if _, err := s.repo.FindByID(ctx, user.LinkedAccountID); err != nil {
			if errors.Is(err, usererrors.ErrNotFound) || errors.Is(err, usererrors.ErrInvalidID) {
				return apperrors.InvalidInput("Linked account does not exist")
			}
			return apperrors.Internal("Failed to verify linked account", err)
		}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.cfg.Log.Error("Failed to create user", "error", err)
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created", "id", user.ID, "role", user.Role, "membership_tier", user.MembershipTier)
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, usererrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	users, total, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, 0, apperrors.Internal("Failed to list users", err)
	}
	return users, total, nil
}
