package auth

import (
	"context"
	"net/http"

	"gameflux/backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileReader loads the stored profile of an account.
type ProfileReader interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// AdminMiddleware creates a gin middleware to check for admin capability.
// It must be used AFTER AuthMiddleware. The flag is read from the store on every request.
func AdminMiddleware(policy *Policy, profiles ProfileReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := FromContext(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		subject := Subject{Email: identity.Email}
		profile, err := profiles.GetProfile(c.Request.Context(), identity.ID)
		if err != nil {
			log.Debug("Admin check without profile", "user", identity.ID, "error", err)
		} else {
			subject.IsAdmin = profile.IsAdmin
		}

		if !policy.IsAdmin(subject) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}
