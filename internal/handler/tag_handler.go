package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCategories godoc
// @Summary      List game categories
// @Description  Returns every distinct tag of the listed games, sorted.
// @Tags         games
// @Produce      json
// @Success      200 {array} string
// @Router       /games/categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	tags := h.catalog.Tags()
	if tags == nil {
		tags = []string{}
	}
	c.JSON(http.StatusOK, tags)
}
