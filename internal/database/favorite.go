package database

import (
	"context"
	"errors"
	"time"

	"gameflux/backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFavorites returns the user's favorites, most recent first.
func (c *Client) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("game_id").
		Find(&favorites).Error
	if err != nil {
		log.Error("failed to list favorites", "user", userID, "error", err)
		return nil, err
	}
	return favorites, nil
}

// AddFavorite records (userID, gameID). ErrDuplicate is returned if the pair already exists
// and ErrNotFound if the user does not.
func (c *Client) AddFavorite(ctx context.Context, userID uuid.UUID, gameID string) (*models.Favorite, error) {
	favorite := models.Favorite{
		UserID:    userID,
		GameID:    gameID,
		CreatedAt: time.Now(),
	}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		var existing int64
		if err := tx.Model(&models.Favorite{}).
			Where("user_id = ? AND game_id = ?", userID, gameID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicate
		}
		return tx.Create(&favorite).Error
	})
	if err = translate(err); err != nil {
		if !errors.Is(err, ErrDuplicate) && !errors.Is(err, ErrNotFound) {
			log.Error("failed to add favorite", "user", userID, "game", gameID, "error", err)
		}
		return nil, err
	}
	return &favorite, nil
}

// RemoveFavorite deletes (userID, gameID). Removing a missing pair is not an error.
func (c *Client) RemoveFavorite(ctx context.Context, userID uuid.UUID, gameID string) error {
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		log.Error("failed to remove favorite", "user", userID, "game", gameID, "error", err)
	}
	return err
}

func (c *Client) HasFavorite(ctx context.Context, userID uuid.UUID, gameID string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	return count > 0, err
}

func (c *Client) CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (c *Client) CountAllFavorites(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.Favorite{}).Count(&count).Error
	return count, err
}
