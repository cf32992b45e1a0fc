package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gameflux/backend/internal/config"
	"gameflux/backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a record with the same key already exists.
	ErrDuplicate = errors.New("record already exists")
)

// DB is the persistence surface used by the services.
type DB interface {
	// Users
	CreateUser(ctx context.Context, user *models.User, profile *models.Profile) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// Profiles
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	EnsureProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	SetProfileAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (*models.Profile, error)
	ListProfiles(ctx context.Context, q ProfileQuery) ([]models.Profile, int64, error)
	CountProfiles(ctx context.Context, adminsOnly bool) (int64, error)

	// Favorites
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, userID uuid.UUID, gameID string) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID uuid.UUID, gameID string) error
	HasFavorite(ctx context.Context, userID uuid.UUID, gameID string) (bool, error)
	CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error)
	CountAllFavorites(ctx context.Context) (int64, error)

	Close() error
}

var _ DB = (*Client)(nil) // Ensure Client implements DB

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// Connect opens the configured database and runs migrations.
func Connect(cfg *config.DatabaseConfig) (*Client, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// Configure GORM logger
	gormLogger := logger.New(
		log.WithPrefix("gorm").StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel}),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	client := &Client{db: db}
	if err := client.Migrate(); err != nil {
		return nil, err
	}

	log.Info("Database connection established", "driver", cfg.Driver)
	return client, nil
}

// Migrate creates or updates the schema.
func (c *Client) Migrate() error {
	if err := c.db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Favorite{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps gorm errors onto the package errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
