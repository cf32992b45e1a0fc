package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/cache"
	"gameflux/backend/internal/catalog"
	"gameflux/backend/internal/config"
	"gameflux/backend/internal/database"
	"gameflux/backend/internal/gravatar"
	"gameflux/backend/internal/handler"
	"gameflux/backend/internal/server"
	"gameflux/backend/internal/service"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GameFlux API server",
	Long:  `Load the game catalog, connect to the database and serve the HTTP API until interrupted.`,
	Example: `gameflux serve --config config.yml
gameflux serve -c /path/to/config.yml --log-level debug
`,
	RunE: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	games, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info("Catalog loaded", "games", games.Len(), "path", cfg.CatalogPath)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if ownerPending(ctx, db, cfg.Auth.OwnerEmail) {
		log.Warn("Owner account is not registered yet, the first sign-up with this email becomes owner",
			"owner_email", cfg.Auth.OwnerEmail)
	}

	srv := newServer(cfg, games, db)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("API server error: %w", err)
	}
	log.Info("GameFlux stopped")
	return nil
}

// ownerPending reports whether an owner email is configured but no account uses it.
func ownerPending(ctx context.Context, db database.DB, email string) bool {
	if email == "" {
		return false
	}
	_, err := db.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		log.Error("failed to look up owner account", "error", err)
		return false
	}
	return errors.Is(err, database.ErrNotFound)
}

// newServer builds the services and the HTTP server on top of an open database.
func newServer(cfg *config.Config, games *catalog.Catalog, db *database.Client) *server.Server {
	revoker := auth.NewRevoker(cache.New(cfg.Cache))
	policy := auth.NewPolicy(cfg.Auth.OwnerEmail)

	var avatars *gravatar.Options
	if cfg.Gravatar != nil && cfg.Gravatar.Enabled {
		avatars = &gravatar.Options{
			DefaultImage: cfg.Gravatar.DefaultImage,
			Rating:       cfg.Gravatar.Rating,
			Size:         cfg.Gravatar.Size,
		}
	}

	pageSize := service.DefaultPageSize
	if cfg.Admin != nil {
		pageSize = cfg.Admin.DefaultPageSize
	}

	h := handler.New(
		games,
		service.NewFavorites(db),
		service.NewDirectory(db, policy, pageSize),
		service.NewAccounts(db, revoker, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		service.NewProfiles(db, avatars),
	)

	return server.New(cfg.Listen, server.Deps{
		Handler:       h,
		Authenticator: auth.NewAuthenticator(cfg.Auth.JWTSecret, revoker, db),
		Policy:        policy,
		Profiles:      db,
	}, log.GetLevel() == log.DebugLevel)
}
