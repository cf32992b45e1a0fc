package catalog

import (
	"gameflux/backend/internal/models"

	"github.com/samber/lo"
)

// DefaultRelatedLimit is the number of related games shown next to a game.
const DefaultRelatedLimit = 4

// Related returns up to limit games sharing the first tag of game, excluding game itself.
// Results follow catalog order; they are not ranked.
func (c *Catalog) Related(game models.Game, limit int) []models.Game {
	if len(game.Tags) == 0 || limit <= 0 {
		return []models.Game{}
	}

	related := lo.Reject(c.Query(Filter{Category: game.Tags[0]}), func(g models.Game, _ int) bool {
		return g.ID == game.ID
	})

	if len(related) > limit {
		related = related[:limit]
	}
	return related
}
