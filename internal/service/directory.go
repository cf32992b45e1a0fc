package service

import (
	"context"
	"errors"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/database"
	"gameflux/backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	// DefaultPageSize is used when the caller passes no usable page size.
	DefaultPageSize = 20
	// MaxPageSize caps a single listing page.
	MaxPageSize = 100
)

// UserPage is one page of the admin user listing.
type UserPage struct {
	Items      []models.Profile
	Total      int64
	TotalPages int
	Page       int
	PageSize   int
}

// Directory is the admin view over all user profiles.
type Directory struct {
	db              database.DB
	policy          *auth.Policy
	defaultPageSize int
}

// NewDirectory creates a directory. defaultPageSize < 1 falls back to DefaultPageSize.
func NewDirectory(db database.DB, policy *auth.Policy, defaultPageSize int) *Directory {
	if defaultPageSize < 1 {
		defaultPageSize = DefaultPageSize
	}
	return &Directory{
		db:              db,
		policy:          policy,
		defaultPageSize: min(defaultPageSize, MaxPageSize),
	}
}

// subject loads the current email and stored admin flag of id.
// A user without a profile is a subject without the flag.
func (d *Directory) subject(ctx context.Context, id uuid.UUID) (auth.Subject, error) {
	user, err := d.db.GetUserByID(ctx, id)
	if err != nil {
		return auth.Subject{}, err
	}
	subject := auth.Subject{Email: user.Email}

	profile, err := d.db.GetProfile(ctx, id)
	switch {
	case err == nil:
		subject.IsAdmin = profile.IsAdmin
	case !errors.Is(err, database.ErrNotFound):
		return auth.Subject{}, err
	}
	return subject, nil
}

// authorize resolves the actor from the store and requires admin capability.
func (d *Directory) authorize(ctx context.Context, actor *auth.Identity) (auth.Subject, error) {
	if actor == nil {
		return auth.Subject{}, ErrUnauthorized
	}
	subject, err := d.subject(ctx, actor.ID)
	if errors.Is(err, database.ErrNotFound) {
		return auth.Subject{}, ErrUnauthorized
	}
	if err != nil {
		return auth.Subject{}, upstream(err)
	}
	if !d.policy.IsAdmin(subject) {
		return auth.Subject{}, ErrForbidden
	}
	return subject, nil
}

// target resolves the subject of an admin action. A missing profile is NotFound.
func (d *Directory) target(ctx context.Context, id uuid.UUID) (auth.Subject, error) {
	profile, err := d.db.GetProfile(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return auth.Subject{}, ErrNotFound
	}
	if err != nil {
		return auth.Subject{}, upstream(err)
	}

	subject := auth.Subject{IsAdmin: profile.IsAdmin}
	user, err := d.db.GetUserByID(ctx, id)
	switch {
	case err == nil:
		subject.Email = user.Email
	case !errors.Is(err, database.ErrNotFound):
		return auth.Subject{}, upstream(err)
	}
	return subject, nil
}

// ListUsers returns one page of profiles matching search, newest first.
// page is 1-indexed; a page past the end is empty but keeps accurate totals.
func (d *Directory) ListUsers(ctx context.Context, actor *auth.Identity, search string, page, pageSize int) (*UserPage, error) {
	if _, err := d.authorize(ctx, actor); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = d.defaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)

	items, total, err := d.db.ListProfiles(ctx, database.ProfileQuery{
		Search: search,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, upstream(err)
	}

	return &UserPage{
		Items:      items,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// SetAdminFlag grants or revokes admin capability. The owner can never lose it.
func (d *Directory) SetAdminFlag(ctx context.Context, actor *auth.Identity, targetID uuid.UUID, isAdmin bool) (*models.Profile, error) {
	subject, err := d.authorize(ctx, actor)
	if err != nil {
		return nil, err
	}
	target, err := d.target(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !d.policy.CanSetAdminFlag(subject, target, isAdmin) {
		return nil, ErrForbidden
	}

	profile, err := d.db.SetProfileAdmin(ctx, targetID, isAdmin)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, upstream(err)
	}

	log.Info("Admin flag updated", "actor", actor.ID, "target", targetID, "is_admin", isAdmin)
	return profile, nil
}

// DeleteUser removes a user, its profile and its favorites. The owner can never be deleted.
func (d *Directory) DeleteUser(ctx context.Context, actor *auth.Identity, targetID uuid.UUID) error {
	subject, err := d.authorize(ctx, actor)
	if err != nil {
		return err
	}
	target, err := d.target(ctx, targetID)
	if errors.Is(err, ErrNotFound) {
		// a user whose profile is missing can still be deleted
		target, err = d.subject(ctx, targetID)
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return upstream(err)
		}
	}
	if err != nil {
		return err
	}
	if !d.policy.CanDeleteProfile(subject, target) {
		return ErrForbidden
	}

	if err := d.db.DeleteUser(ctx, targetID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return upstream(err)
	}

	log.Info("User deleted", "actor", actor.ID, "target", targetID)
	return nil
}
