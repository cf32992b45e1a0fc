package service

import (
	"context"
	"errors"
	"strings"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/database"
	"gameflux/backend/internal/models"

	"github.com/samber/lo"
)

// Favorites manages the per-user set of favorited games.
type Favorites struct {
	db database.DB
}

func NewFavorites(db database.DB) *Favorites {
	return &Favorites{db: db}
}

// List returns the actor's favorites, most recent first.
func (f *Favorites) List(ctx context.Context, actor *auth.Identity) ([]models.Favorite, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	favorites, err := f.db.ListFavorites(ctx, actor.ID)
	if err != nil {
		return nil, upstream(err)
	}
	return favorites, nil
}

// Add favorites gameID. Adding the same game twice fails with ErrAlreadyFavorited.
func (f *Favorites) Add(ctx context.Context, actor *auth.Identity, gameID string) (*models.Favorite, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, invalid("game id is required")
	}

	favorite, err := f.db.AddFavorite(ctx, actor.ID, gameID)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, ErrAlreadyFavorited
	}
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, upstream(err)
	}
	return favorite, nil
}

// Remove drops gameID from the actor's favorites. A missing favorite is not an error.
func (f *Favorites) Remove(ctx context.Context, actor *auth.Identity, gameID string) error {
	if actor == nil {
		return ErrUnauthorized
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return invalid("game id is required")
	}
	if err := f.db.RemoveFavorite(ctx, actor.ID, gameID); err != nil {
		return upstream(err)
	}
	return nil
}

func (f *Favorites) Count(ctx context.Context, actor *auth.Identity) (int64, error) {
	if actor == nil {
		return 0, ErrUnauthorized
	}
	count, err := f.db.CountFavorites(ctx, actor.ID)
	if err != nil {
		return 0, upstream(err)
	}
	return count, nil
}

// IsFavorite reports whether gameID is in the actor's favorites.
func (f *Favorites) IsFavorite(ctx context.Context, actor *auth.Identity, gameID string) (bool, error) {
	if actor == nil {
		return false, ErrUnauthorized
	}
	ok, err := f.db.HasFavorite(ctx, actor.ID, gameID)
	if err != nil {
		return false, upstream(err)
	}
	return ok, nil
}

// FavoriteSet returns the actor's favorite game ids as a set.
func (f *Favorites) FavoriteSet(ctx context.Context, actor *auth.Identity) (map[string]bool, error) {
	favorites, err := f.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(favorites, func(fav models.Favorite) (string, bool) {
		return fav.GameID, true
	}), nil
}
