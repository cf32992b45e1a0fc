package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents the public, editable part of a user.
// Its ID is the ID of the User it belongs to.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username    *string   `gorm:"size:255" json:"username"`
	DisplayName *string   `gorm:"size:255" json:"display_name"`
	Bio         *string   `json:"bio"`
	AvatarURL   *string   `gorm:"size:1024" json:"avatar_url"`
	IsAdmin     bool      `gorm:"not null;default:false;index" json:"is_admin"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
