package repository

import (
	"context"
	"errors"

	"vaultguard/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Document, error)
	SearchByName(ctx context.Context, userID uuid.UUID, query string) ([]entity.Document, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&doc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Document, error) {
	var docs []entity.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) SearchByName(ctx context.Context, userID uuid.UUID, query string) ([]entity.Document, error) {
	var docs []entity.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name ILIKE ?", userID, "%"+query+"%").
		Order("uploaded_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Document{}).
		Where("id = ?", id).
		Update("name", name).
		Error
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Document{}).
		Error
}
