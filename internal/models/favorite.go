package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a catalog game as favorited by a user.
// The primary key is a composite of (UserID, GameID) to ensure uniqueness.
// GameID is a weak reference: removing a game from the catalog leaves its favorites in place.
type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	GameID    string    `gorm:"size:64;primaryKey" json:"game_id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Favorite) TableName() string {
	return "user_favorites"
}
