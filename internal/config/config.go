package config

import (
	"fmt"
	"strings"
	"time"

	"gameflux/backend/internal/gravatar"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Cache backends.
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// Config holds the application configuration.
type Config struct {
	// Listen is the address the HTTP server listens on.
	Listen string `mapstructure:"listen"`
	// LogLevel is the default log level, overridden by --log-level.
	LogLevel string `mapstructure:"log_level"`
	// CatalogPath is the path to the JSON file holding the game catalog.
	CatalogPath string `mapstructure:"catalog_path"`

	Database *DatabaseConfig `mapstructure:"database"`
	Auth     *AuthConfig     `mapstructure:"auth"`
	Cache    *CacheConfig    `mapstructure:"cache"`
	Gravatar *GravatarConfig `mapstructure:"gravatar"`
	Admin    *AdminConfig    `mapstructure:"admin"`
}

// DatabaseConfig selects the persistent store.
type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver string `mapstructure:"driver"`
	// DSN is the postgres connection string or the sqlite file path.
	DSN string `mapstructure:"dsn"`
}

// AuthConfig holds token and ownership settings.
type AuthConfig struct {
	// JWTSecret signs bearer tokens.
	JWTSecret string `mapstructure:"jwt_secret"`
	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// OwnerEmail is the single account whose admin status can never be removed.
	OwnerEmail string `mapstructure:"owner_email"`
}

// CacheConfig holds the token revocation cache settings.
type CacheConfig struct {
	Type     string `mapstructure:"type"`
	RedisURL string `mapstructure:"redis_url"`
}

// GravatarConfig holds the configuration for Gravatar profile pictures.
type GravatarConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// DefaultImage is the image used when no Gravatar is found.
	// Valid values: "404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"
	DefaultImage string `mapstructure:"default_image"`
	// Rating is the maximum rating, one of "g", "pg", "r", "x".
	Rating string `mapstructure:"rating"`
	// Size is the image size in pixels (1-2048).
	Size int `mapstructure:"size"`
}

// AdminConfig holds admin panel settings.
type AdminConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
}

// Load reads the configuration from path, or from the default search paths when path is empty.
// Environment variables prefixed with GAMEFLUX_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("GAMEFLUX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.gameflux")
		v.AddConfigPath("/etc/gameflux")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Warn("config file not found, loading from defaults and environment variables")
	} else {
		log.Debug("using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("catalog_path", "data/games.json")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "data/gameflux.db")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.owner_email", "")

	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.redis_url", "localhost:6379")

	v.SetDefault("gravatar.enabled", false)
	v.SetDefault("gravatar.default_image", "robohash")
	v.SetDefault("gravatar.rating", "g")
	v.SetDefault("gravatar.size", 80)

	v.SetDefault("admin.default_page_size", 20)
}

func validateConfig(c *Config) error {
	if c.Database == nil {
		return fmt.Errorf("missing database config")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}

	if c.Auth == nil || c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	if c.Auth.OwnerEmail == "" {
		log.Warn("auth.owner_email is empty, no account is protected as owner")
	}

	if c.Cache == nil {
		return fmt.Errorf("missing cache config")
	}
	switch c.Cache.Type {
	case CacheTypeMemory:
	case CacheTypeRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required when cache type is redis")
		}
	default:
		return fmt.Errorf("unsupported cache type %q", c.Cache.Type)
	}

	if c.CatalogPath == "" {
		return fmt.Errorf("catalog_path is required")
	}

	if c.Gravatar != nil && c.Gravatar.Enabled {
		if !gravatar.IsValidDefaultImage(c.Gravatar.DefaultImage) {
			return fmt.Errorf("invalid gravatar default_image %q", c.Gravatar.DefaultImage)
		}
		if !gravatar.IsValidRating(c.Gravatar.Rating) {
			return fmt.Errorf("invalid gravatar rating %q", c.Gravatar.Rating)
		}
		if !gravatar.IsValidSize(c.Gravatar.Size) {
			return fmt.Errorf("gravatar size must be between 1 and 2048, got %d", c.Gravatar.Size)
		}
	}

	if c.Admin != nil && c.Admin.DefaultPageSize < 1 {
		c.Admin.DefaultPageSize = 20
	}

	return nil
}
