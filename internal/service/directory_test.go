package service

import (
	"gameflux/backend/internal/auth"
	"gameflux/backend/internal/database"

	"github.com/google/uuid"
)

func (s *ServiceTestSuite) TestListUsers_SearchPaging() {
	admin := s.user("admin@example.com", "root", 10, true)
	s.user("a@example.com", "john", 3, false)
	second := s.user("b@example.com", "jolene", 2, false)
	s.user("c@example.com", "mojo", 1, false)

	page, err := s.directory.ListUsers(s.ctx, admin, "jo", 2, 1)
	s.Require().NoError(err)
	s.EqualValues(3, page.Total)
	s.Equal(3, page.TotalPages)
	s.Equal(2, page.Page)
	s.Require().Len(page.Items, 1)
	s.Equal(second.ID, page.Items[0].ID)

	page, err = s.directory.ListUsers(s.ctx, admin, "jo", 9, 1)
	s.Require().NoError(err)
	s.Empty(page.Items)
	s.EqualValues(3, page.Total)
	s.Equal(3, page.TotalPages)
}

func (s *ServiceTestSuite) TestListUsers_PageDefaults() {
	admin := s.user("admin@example.com", "root", 0, true)

	page, err := s.directory.ListUsers(s.ctx, admin, "", 0, 0)
	s.Require().NoError(err)
	s.Equal(1, page.Page)
	s.Equal(DefaultPageSize, page.PageSize)
	s.Equal(1, page.TotalPages)

	page, err = s.directory.ListUsers(s.ctx, admin, "", 1, 1000)
	s.Require().NoError(err)
	s.Equal(MaxPageSize, page.PageSize)

	page, err = s.directory.ListUsers(s.ctx, admin, "nobody", 1, 10)
	s.Require().NoError(err)
	s.Zero(page.Total)
	s.Zero(page.TotalPages)
}

func (s *ServiceTestSuite) TestListUsers_Authorization() {
	user := s.user("user@example.com", "user", 0, false)

	_, err := s.directory.ListUsers(s.ctx, nil, "", 1, 10)
	s.ErrorIs(err, ErrUnauthorized)

	_, err = s.directory.ListUsers(s.ctx, user, "", 1, 10)
	s.ErrorIs(err, ErrForbidden)

	ghost := &auth.Identity{ID: uuid.New(), Email: "ghost@example.com"}
	_, err = s.directory.ListUsers(s.ctx, ghost, "", 1, 10)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *ServiceTestSuite) TestListUsers_OwnerWithoutFlag() {
	owner := s.user(ownerEmail, "owner", 0, false)

	_, err := s.directory.ListUsers(s.ctx, owner, "", 1, 10)
	s.NoError(err)
}

func (s *ServiceTestSuite) TestSetAdminFlag_NonAdminForbidden() {
	user := s.user("user@example.com", "user", 0, false)
	target := s.user("target@example.com", "target", 1, false)

	_, err := s.directory.SetAdminFlag(s.ctx, user, target.ID, true)
	s.ErrorIs(err, ErrForbidden)
	s.False(s.isAdmin(target.ID))
}

func (s *ServiceTestSuite) TestSetAdminFlag() {
	admin := s.user("admin@example.com", "admin", 0, true)
	target := s.user("target@example.com", "target", 1, false)

	profile, err := s.directory.SetAdminFlag(s.ctx, admin, target.ID, true)
	s.Require().NoError(err)
	s.True(profile.IsAdmin)
	s.True(s.isAdmin(target.ID))

	_, err = s.directory.SetAdminFlag(s.ctx, admin, target.ID, false)
	s.Require().NoError(err)
	s.False(s.isAdmin(target.ID))

	_, err = s.directory.SetAdminFlag(s.ctx, admin, uuid.New(), true)
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestSetAdminFlag_OwnerProtected() {
	owner := s.user("Owner@GameFlux.dev", "owner", 0, true)
	admin := s.user("admin@example.com", "admin", 1, true)

	_, err := s.directory.SetAdminFlag(s.ctx, admin, owner.ID, false)
	s.ErrorIs(err, ErrForbidden)
	s.True(s.isAdmin(owner.ID))

	_, err = s.directory.SetAdminFlag(s.ctx, owner, owner.ID, false)
	s.ErrorIs(err, ErrForbidden)
	s.True(s.isAdmin(owner.ID))
}

func (s *ServiceTestSuite) TestSetAdminFlag_RevokedAdminLosesAccess() {
	admin := s.user("admin@example.com", "admin", 0, true)
	other := s.user("other@example.com", "other", 1, true)
	target := s.user("target@example.com", "target", 2, false)

	_, err := s.directory.SetAdminFlag(s.ctx, other, admin.ID, false)
	s.Require().NoError(err)

	_, err = s.directory.SetAdminFlag(s.ctx, admin, target.ID, true)
	s.ErrorIs(err, ErrForbidden)
}

func (s *ServiceTestSuite) TestDeleteUser() {
	admin := s.user("admin@example.com", "admin", 0, true)
	target := s.user("target@example.com", "target", 1, false)
	_, err := s.favorites.Add(s.ctx, target, "10")
	s.Require().NoError(err)

	s.Require().NoError(s.directory.DeleteUser(s.ctx, admin, target.ID))

	total, err := s.db.CountAllFavorites(s.ctx)
	s.Require().NoError(err)
	s.Zero(total)
	s.ErrorIs(s.directory.DeleteUser(s.ctx, admin, target.ID), ErrNotFound)
}

func (s *ServiceTestSuite) TestDeleteUser_WithoutProfile() {
	admin := s.user("admin@example.com", "admin", 0, true)
	target := s.user("target@example.com", "target", 1, false)
	s.dropProfile(target.ID)

	s.Require().NoError(s.directory.DeleteUser(s.ctx, admin, target.ID))
	_, err := s.db.GetUserByID(s.ctx, target.ID)
	s.ErrorIs(err, database.ErrNotFound)

	s.ErrorIs(s.directory.DeleteUser(s.ctx, admin, target.ID), ErrNotFound)
}

func (s *ServiceTestSuite) TestDeleteUser_OwnerWithoutProfile() {
	owner := s.user(ownerEmail, "owner", 0, false)
	admin := s.user("admin@example.com", "admin", 1, true)
	s.dropProfile(owner.ID)

	s.ErrorIs(s.directory.DeleteUser(s.ctx, admin, owner.ID), ErrForbidden)
}

func (s *ServiceTestSuite) TestDeleteUser_OwnerAndPermissions() {
	owner := s.user(ownerEmail, "owner", 0, false)
	admin := s.user("admin@example.com", "admin", 1, true)
	user := s.user("user@example.com", "user", 2, false)

	s.ErrorIs(s.directory.DeleteUser(s.ctx, admin, owner.ID), ErrForbidden)
	s.ErrorIs(s.directory.DeleteUser(s.ctx, user, admin.ID), ErrForbidden)
	s.ErrorIs(s.directory.DeleteUser(s.ctx, nil, admin.ID), ErrUnauthorized)

	_, err := s.db.GetUserByID(s.ctx, owner.ID)
	s.NoError(err)
}

func (s *ServiceTestSuite) TestStats() {
	admin := s.user("admin@example.com", "admin", 0, true)
	user := s.user("user@example.com", "user", 1, false)
	_, err := s.favorites.Add(s.ctx, user, "10")
	s.Require().NoError(err)
	_, err = s.favorites.Add(s.ctx, admin, "11")
	s.Require().NoError(err)

	stats, err := s.directory.Stats(s.ctx, admin, 42)
	s.Require().NoError(err)
	s.EqualValues(2, stats.TotalUsers)
	s.EqualValues(1, stats.TotalAdmins)
	s.EqualValues(2, stats.TotalFavorites)
	s.Equal(42, stats.TotalGames)

	_, err = s.directory.Stats(s.ctx, user, 42)
	s.ErrorIs(err, ErrForbidden)
}

func (s *ServiceTestSuite) TestStats_UsersMatchListing() {
	admin := s.user("admin@example.com", "admin", 0, true)
	orphan := s.user("orphan@example.com", "orphan", 1, false)
	s.dropProfile(orphan.ID)

	stats, err := s.directory.Stats(s.ctx, admin, 0)
	s.Require().NoError(err)
	page, err := s.directory.ListUsers(s.ctx, admin, "", 1, 10)
	s.Require().NoError(err)
	s.EqualValues(1, stats.TotalUsers)
	s.Equal(page.Total, stats.TotalUsers)
}
