package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"user-profile-api/internal/domain/user"
)

type UserRepositorySuite struct {
	suite.Suite
	repo *UserRepository
	ctx  context.Context
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) SetupTest() {
	s.repo = NewUserRepository()
	s.ctx = context.Background()
}

func newUser(email string, birth time.Time) user.User {
	return user.User{
		Email:     email,
		FirstName: "Jane",
		LastName:  "Doe",
		BirthDate: birth,
	}
}

func (s *UserRepositorySuite) TestCreateAssignsIDAndEnforcesEmail() {
	created, err := s.repo.CreateUser(s.ctx, newUser("jane@example.com", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, created.UUID)

	exists, err := s.repo.ExistsByEmail(s.ctx, "jane@example.com")
	s.Require().NoError(err)
	s.True(exists)

	_, err = s.repo.CreateUser(s.ctx, newUser("jane@example.com", time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.ErrorIs(err, user.ErrEmailAlreadyExists)
	s.Equal(1, s.repo.Len())
}

func (s *UserRepositorySuite) TestFetchReturnsCopies() {
	addr := "1 Main St"
	in := newUser("copy@example.com", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	in.Address = &addr
	created, err := s.repo.CreateUser(s.ctx, in)
	s.Require().NoError(err)

	*created.Address = "mutated"
	got, err := s.repo.FetchUserByID(s.ctx, created.UUID)
	s.Require().NoError(err)
	s.Equal("1 Main St", *got.Address)
}

func (s *UserRepositorySuite) TestUpdate() {
	a, err := s.repo.CreateUser(s.ctx, newUser("a@example.com", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	b, err := s.repo.CreateUser(s.ctx, newUser("b@example.com", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	s.Run("frees the previous email", func() {
		next := *a
		next.Email = "a2@example.com"
		_, err := s.repo.UpdateUser(s.ctx, next)
		s.Require().NoError(err)

		exists, _ := s.repo.ExistsByEmail(s.ctx, "a@example.com")
		s.False(exists)
	})

	s.Run("rejects another record's email", func() {
		next := *b
		next.Email = "a2@example.com"
		_, err := s.repo.UpdateUser(s.ctx, next)
		s.ErrorIs(err, user.ErrEmailAlreadyExists)
	})

	s.Run("returns nil for an unknown id", func() {
		got, err := s.repo.UpdateUser(s.ctx, newUser("x@example.com", time.Now()).WithID(uuid.New()))
		s.Require().NoError(err)
		s.Nil(got)
	})
}

func (s *UserRepositorySuite) TestFetchUsersByBirthDateIsInclusive() {
	for i, d := range []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2002, 2, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2004, 4, 4, 0, 0, 0, 0, time.UTC),
	} {
		_, err := s.repo.CreateUser(s.ctx, newUser(string(rune('a'+i))+"@example.com", d))
		s.Require().NoError(err)
	}

	us, err := s.repo.FetchUsersByBirthDate(s.ctx,
		time.Date(2002, 2, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2004, 4, 4, 0, 0, 0, 0, time.UTC),
	)
	s.Require().NoError(err)
	s.Require().Len(us, 2)
	s.Equal(time.Date(2002, 2, 2, 0, 0, 0, 0, time.UTC), us[0].BirthDate)
	s.Equal(time.Date(2004, 4, 4, 0, 0, 0, 0, time.UTC), us[1].BirthDate)
}

func (s *UserRepositorySuite) TestDeleteReturnsCopy() {
	addr := "1 Main St"
	in := newUser("copy@example.com", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	in.Address = &addr
	created, err := s.repo.CreateUser(s.ctx, in)
	s.Require().NoError(err)
	stored := s.repo.users[created.UUID]

	deleted, err := s.repo.DeleteUser(s.ctx, created.UUID)
	s.Require().NoError(err)
	s.Require().NotNil(deleted)
	s.NotSame(stored, deleted)
	s.NotSame(stored.Address, deleted.Address)
	s.Equal(*stored, *deleted)
}

func (s *UserRepositorySuite) TestDeleteIsIdempotent() {
	created, err := s.repo.CreateUser(s.ctx, newUser("del@example.com", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	deleted, err := s.repo.DeleteUser(s.ctx, created.UUID)
	s.Require().NoError(err)
	s.Equal(created.UUID, deleted.UUID)

	again, err := s.repo.DeleteUser(s.ctx, created.UUID)
	s.Require().NoError(err)
	s.Nil(again)

	got, err := s.repo.FetchUserByID(s.ctx, created.UUID)
	s.Require().NoError(err)
	s.Nil(got)
	s.Equal(0, s.repo.Len())
}
