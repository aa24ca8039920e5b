package repository

import (
	"context"
	"errors"
	"time"

	"vaultguard/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateEmail is returned when the unique index on users.email rejects
// an insert. Uniqueness is enforced by the index, not check-then-insert.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIDForAuth(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmailForAuth(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, newHash string) error
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	EnableTwoFactor(ctx context.Context, id uuid.UUID, secret string) error
	DisableTwoFactor(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Select(entity.User{}.SafeColumns()).
		Where("id = ?", id).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Select(entity.User{}.SafeColumns()).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) FindByIDForAuth(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) FindByEmailForAuth(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// UpdatePassword is the only mutation path allowed to touch password_hash.
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, newHash string) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("password_hash", newHash).
		Error
}

func (r *userRepository) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("display_name", displayName).
		Error
}

func (r *userRepository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token_hash":       tokenHash,
			"reset_token_expires_at": expiresAt,
		}).
		Error
}

func (r *userRepository) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token_hash":       nil,
			"reset_token_expires_at": nil,
		}).
		Error
}

func (r *userRepository) EnableTwoFactor(ctx context.Context, id uuid.UUID, secret string) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"two_factor_enabled": true,
			"two_factor_secret":  secret,
		}).
		Error
}

func (r *userRepository) DisableTwoFactor(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"two_factor_enabled": false,
			"two_factor_secret":  nil,
		}).
		Error
}
