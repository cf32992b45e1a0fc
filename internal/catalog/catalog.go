// Package catalog holds the static game list and the queries served from it.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gameflux/backend/internal/models"

	"github.com/samber/lo"
)

// AllCategories is the category value that disables category filtering.
// It is matched exactly; "ALL" is treated as an ordinary tag.
const AllCategories = "all"

// ErrGameNotFound is returned when a game id is not part of the catalog.
var ErrGameNotFound = errors.New("game not found")

// Filter narrows a catalog query. Zero values disable the corresponding filter.
type Filter struct {
	Category string
	Search   string
	Limit    int
}

// Catalog is an immutable, ordered list of games.
// It is safe for concurrent use since nothing mutates it after construction.
type Catalog struct {
	games []models.Game
	byID  map[int]int
}

// New creates a catalog from games, keeping their order.
func New(games []models.Game) *Catalog {
	c := &Catalog{
		games: slices.Clone(games),
		byID:  make(map[int]int, len(games)),
	}
	for i, g := range c.games {
		if _, ok := c.byID[g.ID]; !ok {
			c.byID[g.ID] = i
		}
	}
	return c
}

// Load reads a JSON array of games from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var games []models.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return New(games), nil
}

// Len returns the number of listed games, placeholders excluded.
func (c *Catalog) Len() int {
	return len(c.listed())
}

// Query returns the games matching f in catalog order.
// Category and Search are combined with AND semantics.
func (c *Catalog) Query(f Filter) []models.Game {
	games := c.listed()

	if f.Category != "" && f.Category != AllCategories {
		games = lo.Filter(games, func(g models.Game, _ int) bool {
			return hasTag(g, f.Category)
		})
	}

	if f.Search != "" {
		term := strings.ToLower(f.Search)
		games = lo.Filter(games, func(g models.Game, _ int) bool {
			return matchesSearch(g, term)
		})
	}

	if f.Limit > 0 && len(games) > f.Limit {
		games = games[:f.Limit]
	}

	return games
}

// Tags returns the sorted set of tags used by listed games.
func (c *Catalog) Tags() []string {
	tags := lo.FlatMap(c.listed(), func(g models.Game, _ int) []string {
		return g.Tags
	})
	tags = lo.Filter(tags, func(tag string, _ int) bool {
		return strings.TrimSpace(tag) != ""
	})
	tags = lo.Uniq(tags)
	slices.Sort(tags)
	return tags
}

// GetByID returns the game with the given id.
func (c *Catalog) GetByID(id int) (models.Game, error) {
	i, ok := c.byID[id]
	if !ok || !isListed(c.games[i]) {
		return models.Game{}, fmt.Errorf("%w: %d", ErrGameNotFound, id)
	}
	return c.games[i], nil
}

// listed returns the games with a non-empty title, in a fresh slice.
func (c *Catalog) listed() []models.Game {
	return lo.Filter(c.games, func(g models.Game, _ int) bool {
		return isListed(g)
	})
}

func isListed(g models.Game) bool {
	return strings.TrimSpace(g.Title) != ""
}

func hasTag(g models.Game, category string) bool {
	return slices.ContainsFunc(g.Tags, func(tag string) bool {
		return strings.EqualFold(tag, category)
	})
}

// matchesSearch expects term to be lower-cased already.
func matchesSearch(g models.Game, term string) bool {
	if strings.Contains(strings.ToLower(g.Title), term) {
		return true
	}
	return slices.ContainsFunc(g.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), term)
	})
}
