package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/cache"
	"gameflux/backend/internal/config"
	"gameflux/backend/internal/database"
	"gameflux/backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const ownerEmail = "owner@gameflux.dev"

type ServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	db        *database.Client
	policy    *auth.Policy
	revoker   *auth.Revoker
	favorites *Favorites
	directory *Directory
	accounts  *Accounts
	profiles  *Profiles
	base      time.Time
	dsn       string
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.base = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	s.dsn = filepath.Join(s.T().TempDir(), "service.db")
	db, err := database.Connect(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    s.dsn,
	})
	s.Require().NoError(err)
	s.db = db

	s.policy = auth.NewPolicy(ownerEmail)
	s.revoker = auth.NewRevoker(cache.New(&config.CacheConfig{Type: config.CacheTypeMemory}))
	s.favorites = NewFavorites(db)
	s.directory = NewDirectory(db, s.policy, 0)
	s.accounts = NewAccounts(db, s.revoker, "test-secret", time.Hour)
	s.profiles = NewProfiles(db, nil)
}

func (s *ServiceTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

// user stores an account whose profile was created minutesAgo before the base time.
func (s *ServiceTestSuite) user(email, username string, minutesAgo int, isAdmin bool) *auth.Identity {
	user := &models.User{ID: uuid.New(), Email: email, PasswordHash: "hash"}
	profile := &models.Profile{
		Username:  lo.ToPtr(username),
		CreatedAt: s.base.Add(-time.Duration(minutesAgo) * time.Minute),
	}
	s.Require().NoError(s.db.CreateUser(s.ctx, user, profile))
	if isAdmin {
		_, err := s.db.SetProfileAdmin(s.ctx, user.ID, true)
		s.Require().NoError(err)
	}
	return &auth.Identity{ID: user.ID, Email: user.Email}
}

func (s *ServiceTestSuite) isAdmin(id uuid.UUID) bool {
	profile, err := s.db.GetProfile(s.ctx, id)
	s.Require().NoError(err)
	return profile.IsAdmin
}

// dropProfile removes the profile row of id and leaves the user in place.
func (s *ServiceTestSuite) dropProfile(id uuid.UUID) {
	raw, err := gorm.Open(sqlite.Open(s.dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.Require().NoError(raw.Delete(&models.Profile{}, "id = ?", id).Error)

	sqlDB, err := raw.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
