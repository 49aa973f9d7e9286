package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/pkg/jwt"
	"go-erp-api/pkg/logger"
	"go-erp-api/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = apperrors.NotFound("User not found")
	ErrUserInactive       = apperrors.Forbidden("User account is inactive")
	ErrInvalidCredentials = apperrors.Unauthorized("Invalid username or password")
	ErrInvalidToken       = apperrors.Unauthorized("Invalid or expired token")
	ErrSessionRevoked     = apperrors.Unauthorized("Session has been revoked, please log in again")
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ResetPassword(ctx context.Context, username, newPassword string) error
	ValidateToken(ctx context.Context, tokenString string) (*model.User, error)
}

type RegisterRequest struct {
	Username       string `json:"username" validate:"required_trimmed,max=100"`
	Password       string `json:"password" validate:"required,bcrypt_len,strong_password"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required_trimmed"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)

	// 1. Validate presence, password policy and confirmation together
	v := validator.ValidateStruct(req)
	if !v.Has("username") {
		_, err := s.userRepo.FindByUsername(ctx, req.Username)
		switch {
		case err == nil:
			v.Add("username", validator.TakenMessage("username"))
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.Internal("find user", err)
		}
	}
	if len(v) > 0 {
		return nil, apperrors.NewValidation(v)
	}

	// 2. Hash and persist; the unique index settles concurrent registrations
	user := &model.User{Username: req.Username}
	user.Status = model.UserActive
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperrors.Internal("hash password", err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.FieldError("username", validator.TakenMessage("username"))
		}
		return nil, apperrors.Internal("create user", err)
	}

	logger.FromContext(ctx).Info("User registered", zap.Stringer("user_id", user.ID))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if v := validator.ValidateStruct(req); len(v) > 0 {
		return nil, apperrors.NewValidation(v)
	}

	// 1. Find user by username
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Internal("find user", err)
	}

	// 2. Check if user is active
	if !user.IsActive() {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Rotate the token version so earlier tokens stop working
	version := uuid.NewString()
	now := s.now()
	if err := s.userRepo.RecordLogin(ctx, user.ID, version, now); err != nil {
		return nil, apperrors.Internal("record login", err)
	}
	user.TokenVersion = version
	user.LastLoginAt = &now

	// 5. Generate JWT token with TokenVersion
	token, err := s.tokens.GenerateToken(user.ID, user.Username, version)
	if err != nil {
		return nil, apperrors.Internal("generate token", err)
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(s.tokens.TTL()),
		User:      user.ToResponse(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	err := s.userRepo.UpdateTokenVersion(ctx, userID, uuid.NewString())
	if errors.Is(err, apperrors.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return apperrors.Internal("revoke session", err)
	}
	return nil
}

// ResetPassword sets a new password and revokes every session of the user.
func (s *authService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if !validator.PasswordFits(newPassword) {
		return apperrors.FieldError("password", validator.PasswordTooLongMessage("password"))
	}
	if !validator.StrongPassword(newPassword) {
		return apperrors.FieldError("password", "Password must be at least 8 characters long and include an uppercase letter, a lowercase letter, a number and a symbol.")
	}

	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, apperrors.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return apperrors.Internal("find user", err)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return apperrors.Internal("hash password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return apperrors.Internal("update password", err)
	}
	return s.Logout(ctx, user.ID)
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	// 1. Validate JWT token
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// 2. Find user by ID from token claims
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, apperrors.Internal("find user", err)
	}

	// 3. Check if user is still active
	if !user.IsActive() {
		return nil, ErrUserInactive
	}

	// 4. Check against DB for strict session (TokenVersion)
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionRevoked
	}

	return user, nil
}
