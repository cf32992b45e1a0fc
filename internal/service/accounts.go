package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/database"
	"gameflux/backend/internal/models"
	"gameflux/backend/pkg/jwt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)

// Session is the result of a successful sign-up or sign-in.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *auth.Identity
}

// SignUpInput holds the registration form.
type SignUpInput struct {
	Email       string
	Password    string
	Username    string
	DisplayName string
}

// Accounts issues and revokes bearer tokens.
type Accounts struct {
	db       database.DB
	revoker  *auth.Revoker
	secret   string
	tokenTTL time.Duration
}

func NewAccounts(db database.DB, revoker *auth.Revoker, secret string, tokenTTL time.Duration) *Accounts {
	return &Accounts{
		db:       db,
		revoker:  revoker,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// SignUp registers a new account with its profile and signs it in.
func (a *Accounts) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, invalid("a valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, invalid("password must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, upstream(err)
	}

	username := optional(in.Username)
	displayName := optional(in.DisplayName)
	if displayName == nil {
		displayName = username
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	profile := &models.Profile{
		Username:    username,
		DisplayName: displayName,
	}
	if err := a.db.CreateUser(ctx, user, profile); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, invalid("email is already registered")
		}
		return nil, upstream(err)
	}

	log.Info("User registered", "user", user.ID)
	return a.issue(user)
}

// SignIn checks the credentials and issues a new token.
func (a *Accounts) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := a.db.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, upstream(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	if _, err := a.db.EnsureProfile(ctx, user.ID); err != nil {
		return nil, upstream(err)
	}

	return a.issue(user)
}

// SignOut revokes the token the actor authenticated with.
func (a *Accounts) SignOut(ctx context.Context, actor *auth.Identity) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if err := a.revoker.Revoke(ctx, actor.TokenID, actor.ExpiresAt); err != nil {
		return upstream(err)
	}
	return nil
}

// ChangePassword replaces the actor's password after checking the current one.
// Tokens issued before the change stay valid until they expire or are signed out.
func (a *Accounts) ChangePassword(ctx context.Context, actor *auth.Identity, current, next string) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if len(next) < minPasswordLength {
		return invalid("password must be at least 6 characters")
	}

	user, err := a.db.GetUserByID(ctx, actor.ID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrUnauthorized
	}
	if err != nil {
		return upstream(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return invalid("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return upstream(err)
	}
	if err := a.db.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrUnauthorized
		}
		return upstream(err)
	}

	log.Info("Password changed", "user", user.ID)
	return nil
}

func (a *Accounts) issue(user *models.User) (*Session, error) {
	token, claims, err := jwt.GenerateToken(a.secret, user.ID, user.Email, a.tokenTTL)
	if err != nil {
		return nil, upstream(err)
	}
	return &Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User: &auth.Identity{
			ID:        user.ID,
			Email:     user.Email,
			TokenID:   claims.ID,
			ExpiresAt: claims.ExpiresAt.Time,
		},
	}, nil
}

// optional trims s and maps an empty result to nil.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
