package auth

import (
	"context"
	"time"

	"gameflux/backend/internal/cache"

	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
)

const revokedTokensPrefix = "revoked-token-"

// Revoker remembers signed-out tokens until they expire on their own.
type Revoker struct {
	tokens *cache.PrefixedCache[bool]
}

// NewRevoker creates a revoker storing token ids in c.
func NewRevoker(c *gocache.Cache[[]byte]) *Revoker {
	return &Revoker{
		tokens: cache.NewPrefixedCache[bool](c, revokedTokensPrefix),
	}
}

// Revoke marks tokenID as revoked until expiresAt. Already expired tokens are ignored.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return r.tokens.Set(ctx, tokenID, true, store.WithExpiration(ttl))
}

// IsRevoked reports whether tokenID was revoked. Cache misses and errors count as not revoked.
func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) bool {
	revoked, err := r.tokens.Get(ctx, tokenID)
	return err == nil && revoked
}
