package service

import (
	"time"

	"gameflux/backend/internal/models"

	"github.com/samber/lo"
)

func (s *ServiceTestSuite) TestFavorites_RequireIdentity() {
	_, err := s.favorites.List(s.ctx, nil)
	s.ErrorIs(err, ErrUnauthorized)
	_, err = s.favorites.Add(s.ctx, nil, "10")
	s.ErrorIs(err, ErrUnauthorized)
	s.ErrorIs(s.favorites.Remove(s.ctx, nil, "10"), ErrUnauthorized)
	_, err = s.favorites.Count(s.ctx, nil)
	s.ErrorIs(err, ErrUnauthorized)
	_, err = s.favorites.IsFavorite(s.ctx, nil, "10")
	s.ErrorIs(err, ErrUnauthorized)

	total, err := s.db.CountAllFavorites(s.ctx)
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *ServiceTestSuite) TestFavorites_AddListRemove() {
	jo := s.user("jo@example.com", "jo", 0, false)

	_, err := s.favorites.Add(s.ctx, jo, "10")
	s.Require().NoError(err)
	time.Sleep(5 * time.Millisecond)
	_, err = s.favorites.Add(s.ctx, jo, " 12 ")
	s.Require().NoError(err)

	list, err := s.favorites.List(s.ctx, jo)
	s.Require().NoError(err)
	s.Equal([]string{"12", "10"}, lo.Map(list, func(f models.Favorite, _ int) string { return f.GameID }))

	count, err := s.favorites.Count(s.ctx, jo)
	s.Require().NoError(err)
	s.EqualValues(2, count)

	set, err := s.favorites.FavoriteSet(s.ctx, jo)
	s.Require().NoError(err)
	s.Equal(map[string]bool{"10": true, "12": true}, set)

	s.Require().NoError(s.favorites.Remove(s.ctx, jo, "10"))
	ok, err := s.favorites.IsFavorite(s.ctx, jo, "10")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceTestSuite) TestFavorites_InvalidInput() {
	jo := s.user("jo@example.com", "jo", 0, false)

	_, err := s.favorites.Add(s.ctx, jo, "  ")
	s.ErrorIs(err, ErrInvalidInput)
	s.ErrorIs(s.favorites.Remove(s.ctx, jo, ""), ErrInvalidInput)
}

func (s *ServiceTestSuite) TestFavorites_DuplicateRejected() {
	jo := s.user("jo@example.com", "jo", 0, false)

	_, err := s.favorites.Add(s.ctx, jo, "10")
	s.Require().NoError(err)
	_, err = s.favorites.Add(s.ctx, jo, "10")
	s.ErrorIs(err, ErrAlreadyFavorited)
	s.ErrorIs(err, ErrInvalidInput)

	count, err := s.favorites.Count(s.ctx, jo)
	s.Require().NoError(err)
	s.EqualValues(1, count)
}

func (s *ServiceTestSuite) TestFavorites_RemoveMissingIsNoop() {
	jo := s.user("jo@example.com", "jo", 0, false)
	s.NoError(s.favorites.Remove(s.ctx, jo, "404"))
}
