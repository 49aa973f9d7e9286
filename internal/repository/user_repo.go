package repository

import (
	"context"
	"time"

	"go-erp-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error
	UpdateTokenVersion(ctx context.Context, userID uuid.UUID, version string) error
	RecordLogin(ctx context.Context, userID uuid.UUID, version string, at time.Time) error
	UpdateStatus(ctx context.Context, userID uuid.UUID, status int, version string, updatedBy *uuid.UUID) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindAll(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	err := r.db.WithContext(ctx).Order("username").Find(&users).Error
	return users, err
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	return r.updates(ctx, userID, map[string]any{"password": hashedPassword})
}

func (r *userRepo) UpdateTokenVersion(ctx context.Context, userID uuid.UUID, version string) error {
	return r.updates(ctx, userID, map[string]any{"token_version": version})
}

// RecordLogin stores the rotated session version and the login time.
func (r *userRepo) RecordLogin(ctx context.Context, userID uuid.UUID, version string, at time.Time) error {
	return r.updates(ctx, userID, map[string]any{"token_version": version, "last_login_at": at})
}

// UpdateStatus changes the account status and rotates the session version in one statement.
func (r *userRepo) UpdateStatus(ctx context.Context, userID uuid.UUID, status int, version string, updatedBy *uuid.UUID) error {
	return r.updates(ctx, userID, map[string]any{"status": status, "token_version": version, "updated_by": updatedBy})
}

func (r *userRepo) updates(ctx context.Context, userID uuid.UUID, values map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
