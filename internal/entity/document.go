package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	User   User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Name        string `gorm:"type:varchar(255);not null;index" json:"name"`
	StorageKey  string `gorm:"type:text;not null" json:"-"`
	ContentType string `gorm:"type:varchar(255);not null" json:"type"`
	Size        int64  `gorm:"not null" json:"size"`

	UploadedAt time.Time `gorm:"not null" json:"uploadDate"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
