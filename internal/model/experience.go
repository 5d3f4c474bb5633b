package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserExperience tracks the experience points a user has earned from
// generating recipes. One row per user.
type UserExperience struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Points    int            `gorm:"not null;default:0" json:"points"`
}
