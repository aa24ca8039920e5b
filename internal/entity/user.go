package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	DisplayName  string    `gorm:"type:varchar(100);not null" json:"displayName"`

	TwoFactorEnabled bool    `gorm:"default:false;not null" json:"twoFactorEnabled"`
	TwoFactorSecret  *string `gorm:"type:text" json:"-"`

	ResetTokenHash      *string    `gorm:"type:text" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Documents []Document `json:"-"`
}

// SafeColumns is the default projection: credential material stays out of
// reads unless an auth path asks for it explicitly.
func (User) SafeColumns() []string {
	return []string{
		"id", "email", "display_name", "two_factor_enabled",
		"created_at", "updated_at",
	}
}
