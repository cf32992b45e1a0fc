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
	"gorm.io/gorm/clause"
)

// ProfileQuery filters and pages the profile listing.
type ProfileQuery struct {
	// Search matches username or display name, case-insensitively, as a substring.
	Search string
	Offset int
	Limit  int
}

func (c *Client) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := c.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// EnsureProfile returns the profile for id, creating an empty one if missing.
// ErrNotFound is returned when the user itself does not exist.
func (c *Client) EnsureProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, id); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Profile{ID: id}).Error
	})
	if err = translate(err); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to ensure profile", "user", id, "error", err)
		}
		return nil, err
	}
	return c.GetProfile(ctx, id)
}

// UpsertProfile writes the editable profile fields. The admin flag and creation time are never touched.
// ErrNotFound is returned when the user itself does not exist.
func (c *Client) UpsertProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	profile.UpdatedAt = time.Now()
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, profile.ID); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "display_name", "bio", "avatar_url", "updated_at"}),
		}).
			Omit("is_admin").
			Create(profile).Error
	})
	if err = translate(err); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to upsert profile", "user", profile.ID, "error", err)
		}
		return nil, err
	}
	return c.GetProfile(ctx, profile.ID)
}

// SetProfileAdmin persists the admin flag and bumps the update timestamp.
func (c *Client) SetProfileAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.Profile, error) {
	result := c.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_admin": isAdmin, "updated_at": time.Now()})
	if result.Error != nil {
		log.Error("failed to update admin flag", "user", id, "error", result.Error)
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return c.GetProfile(ctx, id)
}

// ListProfiles returns one page of profiles, newest first, and the total match count.
func (c *Client) ListProfiles(ctx context.Context, q ProfileQuery) ([]models.Profile, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Profile{})
	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			`LOWER(username) LIKE ? ESCAPE '\' OR LOWER(display_name) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("failed to count profiles", "error", err)
		return nil, 0, err
	}

	var profiles []models.Profile
	err := query.
		Order("created_at DESC").
		Order("id").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&profiles).Error
	if err != nil {
		log.Error("failed to list profiles", "error", err)
		return nil, 0, err
	}
	return profiles, total, nil
}

func (c *Client) CountProfiles(ctx context.Context, adminsOnly bool) (int64, error) {
	var count int64
	query := c.db.WithContext(ctx).Model(&models.Profile{})
	if adminsOnly {
		query = query.Where("is_admin = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
