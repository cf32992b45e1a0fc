package cli

import (
	"bytes"
	"testing"
	"time"

	"gameflux/backend/internal/catalog"
	"gameflux/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPrintCatalogStats(t *testing.T) {
	games := catalog.New([]models.Game{
		{ID: 1, Title: "Old", Tags: []string{"Puzzle"}, PublishDate: time.Now().AddDate(-2, 0, 0)},
		{ID: 2, Title: "New", Tags: []string{"Puzzle", "Racing"}, PublishDate: time.Now().AddDate(0, -1, 0)},
		{ID: 3, Title: " ", Tags: []string{"Hidden"}, PublishDate: time.Now()},
	})

	var buf bytes.Buffer
	printCatalogStats(&buf, "games.json", 2048, games)
	out := buf.String()

	assert.Contains(t, out, "Catalog: games.json (2.0 kB)")
	assert.Contains(t, out, "Games: 2\n")
	assert.Contains(t, out, "Categories: 2\n")
	assert.Contains(t, out, "Newest release: New,")
	assert.Regexp(t, `Puzzle\s+2`, out)
	assert.Regexp(t, `Racing\s+1`, out)
	assert.NotContains(t, out, "Hidden")
}

func TestPrintCatalogStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	printCatalogStats(&buf, "games.json", 0, catalog.New(nil))

	assert.Contains(t, buf.String(), "Games: 0\n")
	assert.NotContains(t, buf.String(), "Newest release")
}
