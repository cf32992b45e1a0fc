package handler

import (
	"errors"
	"net/http"
	"time"

	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/models"
	"gameflux/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Email       string `json:"email" binding:"required" example:"test@example.com"`
	Password    string `json:"password" binding:"required" example:"password123"`
	Username    string `json:"username" example:"testuser"`
	DisplayName string `json:"display_name" example:"Test User"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required" example:"test@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// PasswordInput defines the structure for a password change.
type PasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required" example:"password123"`
	NewPassword     string `json:"new_password" binding:"required" example:"password456"`
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"password456"`
}

// UserResponse is the identity part of an account.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email" example:"test@example.com"`
}

// SessionResponse is returned on sign-up and sign-in.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ProfileInput holds the editable profile fields. Empty values clear the field.
type ProfileInput struct {
	Username    string `json:"username" example:"testuser"`
	DisplayName string `json:"display_name" example:"Test User"`
	Bio         string `json:"bio" example:"Speedrunner"`
	AvatarURL   string `json:"avatar_url" example:"https://example.com/me.png"`
}

// PrivateProfileResponse defines the structure for the authenticated user's own profile.
type PrivateProfileResponse struct {
	User           UserResponse    `json:"user"`
	Profile        *models.Profile `json:"profile"`
	FavoritesCount int64           `json:"favorites_count"`
}

// ProfileUpdateResponse is returned after a profile edit.
type ProfileUpdateResponse struct {
	Success bool            `json:"success"`
	Profile *models.Profile `json:"profile"`
}

func newSessionResponse(s *service.Session) SessionResponse {
	return SessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      UserResponse{ID: s.User.ID, Email: s.User.Email},
	}
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user with its profile and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  SessionResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.accounts.SignUp(c.Request.Context(), service.SignUpInput{
		Email:       input.Email,
		Password:    input.Password,
		Username:    input.Username,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSessionResponse(session))
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  SessionResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.accounts.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// LogoutUser godoc
// @Summary      Log out
// @Description  Revokes the bearer token used for this request.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/logout [post]
func (h *Handler) LogoutUser(c *gin.Context) {
	if err := h.accounts.SignOut(c.Request.Context(), auth.FromContext(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Replaces the caller's password after checking the current one. Existing tokens stay valid.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PasswordInput true "Password change"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse "Invalid input or wrong current password"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	var input PasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.NewPassword != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	err := h.accounts.ChangePassword(c.Request.Context(), auth.FromContext(c), input.CurrentPassword, input.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// endregion

// region --- Profile Handlers ---

// GetProfile godoc
// @Summary      Get my profile
// @Description  Returns the caller's account, profile and number of favorites. The profile is created on first read.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	identity := auth.FromContext(c)
	profile, err := h.profiles.Get(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := h.favorites.Count(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, PrivateProfileResponse{
		User:           UserResponse{ID: identity.ID, Email: identity.Email},
		Profile:        profile,
		FavoritesCount: count,
	})
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Description  Replaces the caller's username, display name, bio and avatar URL. Blank fields are cleared.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileInput true "Profile fields"
// @Success      200  {object}  ProfileUpdateResponse
// @Failure      400  {object}  ErrorResponse "Invalid input or failed to save"
// @Failure      401  {object}  ErrorResponse
// @Router       /profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), auth.FromContext(c), service.ProfileUpdate{
		Username:    input.Username,
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
		AvatarURL:   input.AvatarURL,
	})
	if errors.Is(err, service.ErrUpstream) {
		// failed writes are reported as bad requests
		respondErrorStatus(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileUpdateResponse{Success: true, Profile: profile})
}

// endregion
