package service

import (
	"context"
	"errors"
	"strings"

	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSelfDeactivation = apperrors.Conflict("You cannot deactivate your own account")

// UserService is the read and status side of account administration.
// Accounts are created through AuthService.Register.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]model.UserResponse, error)
	GetUserByID(ctx context.Context, id string) (*model.UserResponse, error)
	SetUserStatus(ctx context.Context, id string, active bool, actor *uuid.UUID) (*model.UserResponse, error)
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("list users", err)
	}

	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*model.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	response := user.ToResponse()
	return &response, nil
}

// SetUserStatus activates or deactivates an account. Either way the session
// version is rotated, so a deactivated user is signed out everywhere.
func (s *userService) SetUserStatus(ctx context.Context, id string, active bool, actor *uuid.UUID) (*model.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !active && actor != nil && *actor == user.ID {
		return nil, ErrSelfDeactivation
	}

	status := model.UserInactive
	if active {
		status = model.UserActive
	}
	version := uuid.NewString()
	if err := s.userRepo.UpdateStatus(ctx, user.ID, status, version, actor); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.Internal("update user status", err)
	}
	user.Status = status
	user.TokenVersion = version
	user.UpdatedBy = actor

	logger.FromContext(ctx).Info("User status changed",
		zap.Stringer("user_id", user.ID),
		zap.Bool("active", active),
	)
	response := user.ToResponse()
	return &response, nil
}

func (s *userService) find(ctx context.Context, raw string) (*model.User, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("find user", err)
	}
	return user, nil
}
