package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityType string

const (
	ActivityUpload   ActivityType = "upload"
	ActivityDownload ActivityType = "download"
	ActivityDelete   ActivityType = "delete"
	ActivityRename   ActivityType = "rename"
	ActivityLogin    ActivityType = "login"
)

type Activity struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	Type       ActivityType `gorm:"type:varchar(20);not null"`
	DocumentID *uuid.UUID   `gorm:"type:uuid"`
	Document   *Document    `gorm:"constraint:OnDelete:SET NULL"`

	UserAgent string  `gorm:"type:text"`
	IPAddress *string `gorm:"type:varchar(45)"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
