package handler

import (
	"net/http"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// FavoriteInput is the body of an add-favorite request.
type FavoriteInput struct {
	GameID string `json:"gameId" example:"10"`
}

// CountResponse carries a single counter.
type CountResponse struct {
	Count int64 `json:"count" example:"3"`
}

// endregion

// GetFavorites godoc
// @Summary      List favorites
// @Description  Lists the caller's favorite game IDs, most recent first.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  models.Favorite
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /favorites [get]
func (h *Handler) GetFavorites(c *gin.Context) {
	favorites, err := h.favorites.List(c.Request.Context(), auth.FromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	c.JSON(http.StatusOK, favorites)
}

// CountFavorites godoc
// @Summary      Count favorites
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} CountResponse
// @Failure      401 {object} ErrorResponse
// @Router       /favorites/count [get]
func (h *Handler) CountFavorites(c *gin.Context) {
	count, err := h.favorites.Count(c.Request.Context(), auth.FromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: count})
}

// AddFavorite godoc
// @Summary      Add a favorite
// @Description  Adds a game to the caller's favorites. Adding the same game twice is an error.
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FavoriteInput true "Game to favorite"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse "Missing game ID or already a favorite"
// @Failure      401 {object} ErrorResponse
// @Router       /favorites [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	var input FavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.favorites.Add(c.Request.Context(), auth.FromContext(c), input.GameID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// RemoveFavorite godoc
// @Summary      Remove a favorite
// @Description  Removes a game from the caller's favorites. Removing a game that is not a favorite succeeds.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        gameId query string true "Game ID"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse "Missing game ID"
// @Failure      401 {object} ErrorResponse
// @Router       /favorites [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	if err := h.favorites.Remove(c.Request.Context(), auth.FromContext(c), c.Query("gameId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
