package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdentityKey is the gin context key holding the authenticated *Identity.
const IdentityKey = "identity"

// Identity is the authenticated caller as proven by its bearer token.
// It carries no privileges; admin status is always read from the store.
type Identity struct {
	ID        uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// FromContext returns the identity set by the auth middlewares, or nil.
func FromContext(c *gin.Context) *Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*Identity)
	return identity
}
