package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gameflux/backend/internal/cache"
	"gameflux/backend/internal/config"
	"gameflux/backend/internal/models"
	"gameflux/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret"

type fakeProfiles map[uuid.UUID]*models.Profile

func (f fakeProfiles) GetProfile(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	p, ok := f[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

type fakeUsers map[uuid.UUID]*models.User

func (f fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

type MiddlewareTestSuite struct {
	suite.Suite
	revoker  *Revoker
	authn    *Authenticator
	users    fakeUsers
	profiles fakeProfiles
	router   *gin.Engine
}

func (s *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.revoker = NewRevoker(cache.New(&config.CacheConfig{Type: config.CacheTypeMemory}))
	s.users = fakeUsers{}
	s.authn = NewAuthenticator(testSecret, s.revoker, s.users)
	s.profiles = fakeProfiles{}

	s.router = gin.New()
	whoami := func(c *gin.Context) {
		identity := FromContext(c)
		if identity == nil {
			c.JSON(http.StatusOK, gin.H{"email": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	}
	s.router.GET("/required", s.authn.AuthMiddleware(), whoami)
	s.router.GET("/optional", s.authn.OptionalAuthMiddleware(), whoami)
	s.router.GET("/admin", s.authn.AuthMiddleware(), AdminMiddleware(NewPolicy("owner@gameflux.dev"), s.profiles), whoami)
}

func (s *MiddlewareTestSuite) token(email string) (string, uuid.UUID, *jwt.Claims) {
	id := uuid.New()
	s.users[id] = &models.User{ID: id, Email: email}
	token, claims, err := jwt.GenerateToken(testSecret, id, email, time.Hour)
	s.Require().NoError(err)
	return token, id, claims
}

func (s *MiddlewareTestSuite) do(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MiddlewareTestSuite) TestRequired() {
	token, _, _ := s.token("jo@example.com")

	w := s.do("/required", token)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "jo@example.com")

	s.Equal(http.StatusUnauthorized, s.do("/required", "").Code)
	s.Equal(http.StatusUnauthorized, s.do("/required", "garbage").Code)
}

func (s *MiddlewareTestSuite) TestRequired_MalformedHeader() {
	token, _, _ := s.token("jo@example.com")

	req := httptest.NewRequest(http.MethodGet, "/required", nil)
	req.Header.Set("Authorization", "Token "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *MiddlewareTestSuite) TestRequired_RevokedToken() {
	token, _, claims := s.token("jo@example.com")
	s.Require().NoError(s.revoker.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	s.Equal(http.StatusUnauthorized, s.do("/required", token).Code)
}

func (s *MiddlewareTestSuite) TestRequired_DeletedUser() {
	token, id, _ := s.token("jo@example.com")
	s.Equal(http.StatusOK, s.do("/required", token).Code)

	delete(s.users, id)
	s.Equal(http.StatusUnauthorized, s.do("/required", token).Code)

	w := s.do("/optional", token)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"email":""}`, w.Body.String())
}

func (s *MiddlewareTestSuite) TestRequired_EmailFromStore() {
	token, id, _ := s.token("jo@example.com")
	s.users[id].Email = "joanna@example.com"

	w := s.do("/required", token)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "joanna@example.com")
}

func (s *MiddlewareTestSuite) TestAuthenticate_BadSubject() {
	claims := &jwt.Claims{
		Email: "jo@example.com",
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "not-a-uuid",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	s.Require().NoError(err)

	_, ok := s.authn.Authenticate(context.Background(), "Bearer "+token)
	s.False(ok)
}

func (s *MiddlewareTestSuite) TestOptional() {
	token, _, _ := s.token("jo@example.com")

	w := s.do("/optional", token)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "jo@example.com")

	w = s.do("/optional", "garbage")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"email":""}`, w.Body.String())

	w = s.do("/optional", "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *MiddlewareTestSuite) TestAdmin() {
	adminToken, adminID, _ := s.token("admin@gameflux.dev")
	s.profiles[adminID] = &models.Profile{ID: adminID, IsAdmin: true}

	userToken, userID, _ := s.token("user@gameflux.dev")
	s.profiles[userID] = &models.Profile{ID: userID}

	ownerToken, _, _ := s.token("Owner@GameFlux.dev")

	s.Equal(http.StatusOK, s.do("/admin", adminToken).Code)
	s.Equal(http.StatusForbidden, s.do("/admin", userToken).Code)
	s.Equal(http.StatusOK, s.do("/admin", ownerToken).Code, "owner passes without a profile")
	s.Equal(http.StatusUnauthorized, s.do("/admin", "").Code)
}

func (s *MiddlewareTestSuite) TestAdmin_FlagReadEveryRequest() {
	token, id, _ := s.token("admin@gameflux.dev")
	s.profiles[id] = &models.Profile{ID: id, IsAdmin: true}
	s.Equal(http.StatusOK, s.do("/admin", token).Code)

	s.profiles[id].IsAdmin = false
	s.Equal(http.StatusForbidden, s.do("/admin", token).Code)
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func TestRevoker(t *testing.T) {
	ctx := context.Background()
	r := NewRevoker(cache.New(&config.CacheConfig{Type: config.CacheTypeMemory}))

	assert.False(t, r.IsRevoked(ctx, "jti-1"))
	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	assert.True(t, r.IsRevoked(ctx, "jti-1"))
	assert.False(t, r.IsRevoked(ctx, "jti-2"))

	require.NoError(t, r.Revoke(ctx, "jti-old", time.Now().Add(-time.Minute)))
	assert.False(t, r.IsRevoked(ctx, "jti-old"), "expired tokens are not stored")

	require.NoError(t, r.Revoke(ctx, "", time.Now().Add(time.Hour)))
}
