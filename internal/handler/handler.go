package handler

import (
	"errors"
	"net/http"

	"gameflux/backend/internal/catalog"
	"gameflux/backend/internal/service"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP API.
type Handler struct {
	catalog   *catalog.Catalog
	favorites *service.Favorites
	directory *service.Directory
	accounts  *service.Accounts
	profiles  *service.Profiles
}

// New creates a new Handler.
func New(
	games *catalog.Catalog,
	favorites *service.Favorites,
	directory *service.Directory,
	accounts *service.Accounts,
	profiles *service.Profiles,
) *Handler {
	return &Handler{
		catalog:   games,
		favorites: favorites,
		directory: directory,
		accounts:  accounts,
		profiles:  profiles,
	}
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// SuccessResponse is returned by mutations without a payload.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// Ping godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string "{"message": "pong"}"
// @Router       /ping [get]
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// errorStatus maps the service error kinds onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound), errors.Is(err, catalog.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	respondErrorStatus(c, errorStatus(err), err)
}

func respondErrorStatus(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError || errors.Is(err, service.ErrUpstream) {
		log.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
