package handler

import (
	"net/http"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

// AdminFlagInput is the body of an admin flag update.
type AdminFlagInput struct {
	UserID  string `json:"userId" binding:"required" example:"5f0c3a52-3f7e-4b8c-9a55-3a1f6c2b9e10"`
	IsAdmin *bool  `json:"is_admin" binding:"required" example:"true"`
}

// StatsResponse holds the admin dashboard counters.
type StatsResponse struct {
	TotalUsers     int64 `json:"total_users"`
	TotalAdmins    int64 `json:"total_admins"`
	TotalFavorites int64 `json:"total_favorites"`
	TotalGames     int   `json:"total_games"`
}

// PaginatedProfileResponse defines the structure for a paginated list of profiles.
type PaginatedProfileResponse struct {
	Data []models.Profile `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

// endregion

// ListUsers godoc
// @Summary      List users
// @Description  Lists profiles newest first, optionally filtered by a case-insensitive substring of username or display name.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search query     string  false  "Username or display name substring"
// @Param        page   query     int     false  "Page number" default(1)
// @Param        limit  query     int     false  "Items per page" default(20)
// @Success      200    {object}  PaginatedProfileResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse "Admin access required"
// @Router       /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := h.directory.ListUsers(c.Request.Context(), auth.FromContext(c), c.Query("search"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(result.Items, result.Total, result.Page, result.PageSize))
}

// SetAdminFlag godoc
// @Summary      Grant or revoke admin
// @Description  Sets a user's admin flag. The owner's admin status cannot be removed.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body      AdminFlagInput true "Target user and new flag"
// @Success      200   {object}  models.Profile
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required or owner protected"
// @Failure      404   {object}  ErrorResponse "User not found"
// @Router       /admin/users [patch]
func (h *Handler) SetAdminFlag(c *gin.Context) {
	var input AdminFlagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	targetID, err := uuid.Parse(input.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	profile, err := h.directory.SetAdminFlag(c.Request.Context(), auth.FromContext(c), targetID, *input.IsAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Deletes a user with its profile and favorites. The owner cannot be deleted.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User ID"
// @Success      200 {object}  SuccessResponse
// @Failure      400 {object}  ErrorResponse "Invalid user ID"
// @Failure      401 {object}  ErrorResponse
// @Failure      403 {object}  ErrorResponse "Admin access required or owner protected"
// @Failure      404 {object}  ErrorResponse "User not found"
// @Router       /admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.directory.DeleteUser(c.Request.Context(), auth.FromContext(c), targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// GetStats godoc
// @Summary      Admin dashboard counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object}  StatsResponse
// @Failure      401 {object}  ErrorResponse
// @Failure      403 {object}  ErrorResponse "Admin access required"
// @Router       /admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.directory.Stats(c.Request.Context(), auth.FromContext(c), h.catalog.Len())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		TotalUsers:     stats.TotalUsers,
		TotalAdmins:    stats.TotalAdmins,
		TotalFavorites: stats.TotalFavorites,
		TotalGames:     stats.TotalGames,
	})
}
