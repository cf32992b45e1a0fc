package service

import (
	"gameflux/backend/internal/database"
	"gameflux/backend/internal/gravatar"
	"gameflux/backend/pkg/jwt"
)

func (s *ServiceTestSuite) TestSignUp() {
	session, err := s.accounts.SignUp(s.ctx, SignUpInput{
		Email:    " Jo@Example.com ",
		Password: "secret1",
		Username: " jo ",
	})
	s.Require().NoError(err)
	s.NotEmpty(session.Token)
	s.Equal("jo@example.com", session.User.Email)

	claims, err := jwt.ParseToken("test-secret", session.Token)
	s.Require().NoError(err)
	s.Equal(session.User.TokenID, claims.ID)

	profile, err := s.db.GetProfile(s.ctx, session.User.ID)
	s.Require().NoError(err)
	s.Equal("jo", *profile.Username)
	s.Equal("jo", *profile.DisplayName, "display name defaults to username")
	s.False(profile.IsAdmin)
}

func (s *ServiceTestSuite) TestSignUp_Invalid() {
	tests := []struct {
		name string
		in   SignUpInput
	}{
		{name: "missing email", in: SignUpInput{Password: "secret1"}},
		{name: "email without at", in: SignUpInput{Email: "jo.example.com", Password: "secret1"}},
		{name: "short password", in: SignUpInput{Email: "jo@example.com", Password: "12345"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.accounts.SignUp(s.ctx, tt.in)
			s.ErrorIs(err, ErrInvalidInput)
		})
	}

	_, err := s.accounts.SignUp(s.ctx, SignUpInput{Email: "jo@example.com", Password: "secret1"})
	s.Require().NoError(err)
	_, err = s.accounts.SignUp(s.ctx, SignUpInput{Email: "JO@example.com", Password: "secret2"})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *ServiceTestSuite) TestSignIn() {
	_, err := s.accounts.SignUp(s.ctx, SignUpInput{Email: "jo@example.com", Password: "secret1"})
	s.Require().NoError(err)

	session, err := s.accounts.SignIn(s.ctx, "JO@example.com", "secret1")
	s.Require().NoError(err)
	s.Equal("jo@example.com", session.User.Email)

	_, err = s.accounts.SignIn(s.ctx, "jo@example.com", "wrong-password")
	s.ErrorIs(err, ErrUnauthorized)

	_, err = s.accounts.SignIn(s.ctx, "nobody@example.com", "secret1")
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *ServiceTestSuite) TestSignOut() {
	session, err := s.accounts.SignUp(s.ctx, SignUpInput{Email: "jo@example.com", Password: "secret1"})
	s.Require().NoError(err)

	s.False(s.revoker.IsRevoked(s.ctx, session.User.TokenID))
	s.Require().NoError(s.accounts.SignOut(s.ctx, session.User))
	s.True(s.revoker.IsRevoked(s.ctx, session.User.TokenID))

	s.ErrorIs(s.accounts.SignOut(s.ctx, nil), ErrUnauthorized)
}

func (s *ServiceTestSuite) TestProfiles_GetAndUpdate() {
	jo := s.user("jo@example.com", "jo", 0, true)

	profile, err := s.profiles.Get(s.ctx, jo)
	s.Require().NoError(err)
	s.Equal("jo", *profile.Username)

	updated, err := s.profiles.Update(s.ctx, jo, ProfileUpdate{
		Username:    "  joanna ",
		DisplayName: "Joanna",
		Bio:         "   ",
	})
	s.Require().NoError(err)
	s.Equal("joanna", *updated.Username)
	s.Equal("Joanna", *updated.DisplayName)
	s.Nil(updated.Bio)
	s.Nil(updated.AvatarURL)
	s.True(updated.IsAdmin, "profile edits never touch the admin flag")

	_, err = s.profiles.Get(s.ctx, nil)
	s.ErrorIs(err, ErrUnauthorized)
	_, err = s.profiles.Update(s.ctx, nil, ProfileUpdate{})
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *ServiceTestSuite) TestProfiles_CreatedOnFirstRead() {
	jo := s.user("jo@example.com", "jo", 0, false)
	s.dropProfile(jo.ID)

	profile, err := s.profiles.Get(s.ctx, jo)
	s.Require().NoError(err)
	s.Equal(jo.ID, profile.ID)
	s.Nil(profile.Username)
}

func (s *ServiceTestSuite) TestDeletedAccountCannotWrite() {
	owner := s.user(ownerEmail, "owner", 0, false)
	jo := s.user("jo@example.com", "jo", 1, false)
	s.Require().NoError(s.directory.DeleteUser(s.ctx, owner, jo.ID))

	_, err := s.profiles.Get(s.ctx, jo)
	s.ErrorIs(err, ErrUnauthorized)

	_, err = s.profiles.Update(s.ctx, jo, ProfileUpdate{Username: "jo"})
	s.ErrorIs(err, ErrUnauthorized)

	_, err = s.favorites.Add(s.ctx, jo, "1")
	s.ErrorIs(err, ErrUnauthorized)

	s.ErrorIs(s.accounts.ChangePassword(s.ctx, jo, "hash", "secret2"), ErrUnauthorized)

	page, err := s.directory.ListUsers(s.ctx, owner, "", 1, 10)
	s.Require().NoError(err)
	s.EqualValues(1, page.Total)

	_, err = s.db.GetProfile(s.ctx, jo.ID)
	s.ErrorIs(err, database.ErrNotFound)
	total, err := s.db.CountAllFavorites(s.ctx)
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *ServiceTestSuite) TestChangePassword() {
	session, err := s.accounts.SignUp(s.ctx, SignUpInput{Email: "jo@example.com", Password: "secret1"})
	s.Require().NoError(err)

	s.ErrorIs(s.accounts.ChangePassword(s.ctx, session.User, "wrong-password", "secret2"), ErrInvalidInput)
	s.ErrorIs(s.accounts.ChangePassword(s.ctx, session.User, "secret1", "12345"), ErrInvalidInput)
	s.ErrorIs(s.accounts.ChangePassword(s.ctx, nil, "secret1", "secret2"), ErrUnauthorized)

	s.Require().NoError(s.accounts.ChangePassword(s.ctx, session.User, "secret1", "secret2"))

	_, err = s.accounts.SignIn(s.ctx, "jo@example.com", "secret1")
	s.ErrorIs(err, ErrUnauthorized)
	_, err = s.accounts.SignIn(s.ctx, "jo@example.com", "secret2")
	s.NoError(err)
}

func (s *ServiceTestSuite) TestProfiles_GravatarFallback() {
	jo := s.user("jo@example.com", "jo", 0, false)
	profiles := NewProfiles(s.db, &gravatar.Options{DefaultImage: "robohash"})

	profile, err := profiles.Get(s.ctx, jo)
	s.Require().NoError(err)
	s.Require().NotNil(profile.AvatarURL)
	s.Equal(gravatar.URL("jo@example.com", gravatar.Options{DefaultImage: "robohash"}), *profile.AvatarURL)

	stored, err := s.db.GetProfile(s.ctx, jo.ID)
	s.Require().NoError(err)
	s.Nil(stored.AvatarURL)

	updated, err := profiles.Update(s.ctx, jo, ProfileUpdate{AvatarURL: "https://cdn.example.com/jo.png"})
	s.Require().NoError(err)
	s.Equal("https://cdn.example.com/jo.png", *updated.AvatarURL)
}
