package auth

import (
	"context"
	"net/http"
	"strings"

	"gameflux/backend/internal/models"
	"gameflux/backend/pkg/jwt"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserReader loads an account by id.
type UserReader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Authenticator turns bearer tokens into identities.
type Authenticator struct {
	secret  string
	revoker *Revoker
	users   UserReader
}

// NewAuthenticator creates an authenticator. revoker may be nil.
// Tokens of accounts that no longer exist in users are rejected.
func NewAuthenticator(secret string, revoker *Revoker, users UserReader) *Authenticator {
	return &Authenticator{secret: secret, revoker: revoker, users: users}
}

// Authenticate validates a raw "Bearer <token>" header value.
func (a *Authenticator) Authenticate(ctx context.Context, authHeader string) (*Identity, bool) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := jwt.ParseToken(a.secret, parts[1])
	if err != nil {
		log.Debug("Rejected bearer token", "error", err)
		return nil, false
	}
	if a.revoker != nil && a.revoker.IsRevoked(ctx, claims.ID) {
		return nil, false
	}

	userID, err := claims.UserID()
	if err != nil {
		log.Debug("Rejected bearer token", "error", err)
		return nil, false
	}
	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		log.Debug("Rejected bearer token of unknown user", "user", userID, "error", err)
		return nil, false
	}

	identity := &Identity{
		ID:      user.ID,
		Email:   user.Email,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, true
}

// AuthMiddleware rejects requests without a valid, unrevoked bearer token.
func (a *Authenticator) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := a.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// OptionalAuthMiddleware inspects for a token and sets the identity if present and valid,
// but does not fail if the token is missing or invalid.
func (a *Authenticator) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if identity, ok := a.Authenticate(c.Request.Context(), authHeader); ok {
				c.Set(IdentityKey, identity)
			}
		}
		c.Next()
	}
}
