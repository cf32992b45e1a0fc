package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/catalog"
	"gameflux/backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// region --- DTOs ---

// GameResponse is a catalog game, marked with the caller's favorite status when signed in.
type GameResponse struct {
	models.Game
	IsFavorite *bool `json:"is_favorite,omitempty"`
}

// GameDetailResponse is a single game with a few games sharing its first tag.
type GameDetailResponse struct {
	Game       models.Game   `json:"game"`
	Related    []models.Game `json:"related"`
	IsFavorite bool          `json:"is_favorite"`
}

func newGameResponses(games []models.Game, favoriteIDs map[string]bool) []GameResponse {
	return lo.Map(games, func(game models.Game, _ int) GameResponse {
		response := GameResponse{Game: game}
		if favoriteIDs != nil {
			response.IsFavorite = lo.ToPtr(favoriteIDs[strconv.Itoa(game.ID)])
		}
		return response
	})
}

// endregion

// GetGames godoc
// @Summary      Get a list of games
// @Description  Lists catalog games in catalog order, optionally filtered by category and search term.
// @Tags         games
// @Produce      json
// @Param        category query     string  false  "Tag to filter by, \"all\" for no filter"
// @Param        search   query     string  false  "Case-insensitive substring of the title or a tag"
// @Param        limit    query     int     false  "Maximum number of games"
// @Success      200 {array}  GameResponse
// @Failure      400 {object} ErrorResponse "Invalid limit"
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	filter := catalog.Filter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		filter.Limit = limit
	}

	games := h.catalog.Query(filter)

	var favoriteIDs map[string]bool
	if identity := auth.FromContext(c); identity != nil {
		set, err := h.favorites.FavoriteSet(c.Request.Context(), identity)
		if err != nil {
			log.Warn("Failed to load favorites for game list", "user", identity.ID, "error", err)
		} else {
			favoriteIDs = set
		}
	}

	c.JSON(http.StatusOK, newGameResponses(games, favoriteIDs))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves one game, up to four related games sharing its first tag, and its favorite status.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameDetailResponse
// @Failure      400 {object} ErrorResponse "Invalid game ID"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	game, err := h.catalog.GetByID(id)
	if errors.Is(err, catalog.ErrGameNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := GameDetailResponse{
		Game:    game,
		Related: h.catalog.Related(game, catalog.DefaultRelatedLimit),
	}
	if identity := auth.FromContext(c); identity != nil {
		isFav, err := h.favorites.IsFavorite(c.Request.Context(), identity, strconv.Itoa(game.ID))
		if err != nil {
			log.Warn("Failed to check favorite", "user", identity.ID, "game", game.ID, "error", err)
		}
		response.IsFavorite = isFav
	}

	c.JSON(http.StatusOK, response)
}
