package service

import (
	"context"
	"errors"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/database"
	"gameflux/backend/internal/gravatar"
	"gameflux/backend/internal/models"
)

// ProfileUpdate holds the editable profile fields. Blank values clear the field.
type ProfileUpdate struct {
	Username    string
	DisplayName string
	Bio         string
	AvatarURL   string
}

// Profiles reads and edits the actor's own profile.
type Profiles struct {
	db      database.DB
	avatars *gravatar.Options
}

// NewProfiles creates the profile service. Nil avatars disables the Gravatar fallback.
func NewProfiles(db database.DB, avatars *gravatar.Options) *Profiles {
	return &Profiles{db: db, avatars: avatars}
}

// Get returns the actor's profile, creating it on first read.
// An actor whose account was deleted is Unauthorized.
func (p *Profiles) Get(ctx context.Context, actor *auth.Identity) (*models.Profile, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	profile, err := p.db.EnsureProfile(ctx, actor.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, upstream(err)
	}
	p.decorate(actor, profile)
	return profile, nil
}

// Update replaces the editable fields of the actor's profile.
func (p *Profiles) Update(ctx context.Context, actor *auth.Identity, in ProfileUpdate) (*models.Profile, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	profile, err := p.db.UpsertProfile(ctx, &models.Profile{
		ID:          actor.ID,
		Username:    optional(in.Username),
		DisplayName: optional(in.DisplayName),
		Bio:         optional(in.Bio),
		AvatarURL:   optional(in.AvatarURL),
	})
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if errors.Is(err, database.ErrDuplicate) {
		return nil, invalid("profile conflicts with an existing one")
	}
	if err != nil {
		return nil, upstream(err)
	}
	p.decorate(actor, profile)
	return profile, nil
}

// decorate fills in a Gravatar URL when the profile has no avatar of its own.
// The stored row is not modified.
func (p *Profiles) decorate(actor *auth.Identity, profile *models.Profile) {
	if p.avatars == nil || profile.AvatarURL != nil {
		return
	}
	if u := gravatar.URL(actor.Email, *p.avatars); u != "" {
		profile.AvatarURL = &u
	}
}
