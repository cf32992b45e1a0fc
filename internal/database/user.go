package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"gameflux/backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser stores a user and its initial profile in one transaction.
func (c *Client) CreateUser(ctx context.Context, user *models.User, profile *models.Profile) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicate
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.ID = user.ID
		return tx.Create(profile).Error
	})
	if err = translate(err); err != nil && !errors.Is(err, ErrDuplicate) {
		log.Error("failed to create user", "error", err)
	}
	return err
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := c.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := c.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// DeleteUser removes the user together with its profile and favorites.
func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		profiles := tx.Where("id = ?", id).Delete(&models.Profile{})
		if profiles.Error != nil {
			return profiles.Error
		}
		users := tx.Where("id = ?", id).Delete(&models.User{})
		if users.Error != nil {
			return users.Error
		}
		if profiles.RowsAffected == 0 && users.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.Error("failed to delete user", "user", id, "error", err)
	}
	return translate(err)
}

// UpdatePassword replaces the stored password hash of the user.
func (c *Client) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := c.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": passwordHash, "updated_at": time.Now()})
	if result.Error != nil {
		log.Error("failed to update password", "user", id, "error", result.Error)
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// requireUser fails with ErrNotFound when no user row exists for id.
func requireUser(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
