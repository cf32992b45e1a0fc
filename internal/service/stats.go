package service

import (
	"context"

	"gameflux/backend/internal/auth"

	"golang.org/x/sync/errgroup"
)

// Stats are the admin dashboard counters.
// TotalUsers counts profiles, the same rows the user listing pages through.
type Stats struct {
	TotalUsers     int64
	TotalAdmins    int64
	TotalFavorites int64
	TotalGames     int
}

// Stats gathers the dashboard counters. totalGames comes from the loaded catalog.
func (d *Directory) Stats(ctx context.Context, actor *auth.Identity, totalGames int) (*Stats, error) {
	if _, err := d.authorize(ctx, actor); err != nil {
		return nil, err
	}

	stats := &Stats{TotalGames: totalGames}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = d.db.CountProfiles(ctx, false)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalAdmins, err = d.db.CountProfiles(ctx, true)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalFavorites, err = d.db.CountAllFavorites(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstream(err)
	}
	return stats, nil
}
