package repository

import (
	"context"

	"vaultguard/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Log(ctx context.Context, activity *entity.Activity) error
	RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Log(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Activity, error) {
	var activities []entity.Activity
	err := r.db.WithContext(ctx).
		Preload("Document").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
