package cli

import (
	"fmt"
	"io"
	"os"

	"gameflux/backend/internal/catalog"
	"gameflux/backend/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show catalog statistics",
	Long:  `Load the game catalog and print the number of games, its categories and the newest release.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		info, err := os.Stat(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("failed to stat catalog: %w", err)
		}
		games, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}

		printCatalogStats(cmd.OutOrStdout(), cfg.CatalogPath, uint64(info.Size()), games) //nolint:gosec
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func printCatalogStats(w io.Writer, path string, size uint64, games *catalog.Catalog) {
	listed := games.Query(catalog.Filter{})
	tags := games.Tags()

	fmt.Fprintf(w, "Catalog: %s (%s)\n", path, humanize.Bytes(size))
	fmt.Fprintf(w, "Games: %s\n", humanize.Comma(int64(len(listed))))
	fmt.Fprintf(w, "Categories: %d\n", len(tags))

	if len(listed) == 0 {
		return
	}
	newest := lo.MaxBy(listed, func(a, b models.Game) bool {
		return a.PublishDate.After(b.PublishDate)
	})
	fmt.Fprintf(w, "Newest release: %s, %s\n", newest.Title, timediff.TimeDiff(newest.PublishDate))

	for _, tag := range tags {
		count := len(games.Query(catalog.Filter{Category: tag}))
		fmt.Fprintf(w, "  %-20s %d\n", tag, count)
	}
}
