package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-profile-api/internal/domain/user"
)

var columns = []string{
	"id", "email", "first_name", "last_name", "birth_date", "address", "phone_number", "created_at", "updated_at",
}

func strPtr(s string) *string { return &s }

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, &Repository{db: mock}
}

func someUser() user.User {
	return user.User{
		UUID:        uuid.New(),
		Email:       "john.doe@example.com",
		FirstName:   "John",
		LastName:    "Doe",
		BirthDate:   time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Address:     strPtr("1 Main St"),
		PhoneNumber: nil,
	}
}

func rowFor(u user.User) []any {
	now := time.Now()
	var phone any
	if u.PhoneNumber != nil {
		phone = u.PhoneNumber
	}
	var addr any
	if u.Address != nil {
		addr = u.Address
	}
	return []any{u.UUID, u.Email, u.FirstName, u.LastName, u.BirthDate, addr, phone, now, now}
}

func TestRepository_FetchUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, repo := newMock(t)
		u := someUser()
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByID)).
			WithArgs(u.UUID.String()).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(rowFor(u)...))

		got, err := repo.FetchUserByID(context.Background(), u.UUID)
		require.NoError(t, err)
		assert.Equal(t, &u, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent returns nil", func(t *testing.T) {
		mock, repo := newMock(t)
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByID)).
			WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows(columns))

		got, err := repo.FetchUserByID(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("db error", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByID)).
			WithArgs(pgxmock.AnyArg()).
			WillReturnError(errors.New("conn reset"))

		_, err := repo.FetchUserByID(context.Background(), uuid.New())
		require.EqualError(t, err, "conn reset")
	})
}

func TestRepository_ExistsByEmail(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(ExistsUserByEmail)).
		WithArgs("john.doe@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "john.doe@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsByEmail_Error(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(ExistsUserByEmail)).
		WithArgs("john.doe@example.com").
		WillReturnError(errors.New("conn reset"))

	_, err := repo.ExistsByEmail(context.Background(), "john.doe@example.com")
	require.EqualError(t, err, "conn reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateUser(t *testing.T) {
	t.Run("returns stored row", func(t *testing.T) {
		mock, repo := newMock(t)
		u := someUser()
		mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
			WithArgs(u.Email, u.FirstName, u.LastName, u.BirthDate, u.Address, u.PhoneNumber).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(rowFor(u)...))

		in := u
		in.UUID = uuid.Nil
		got, err := repo.CreateUser(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, u.UUID, got.UUID)
		assert.Equal(t, u.Address, got.Address)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		mock, repo := newMock(t)
		u := someUser()
		mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
			WithArgs(u.Email, u.FirstName, u.LastName, u.BirthDate, u.Address, u.PhoneNumber).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := repo.CreateUser(context.Background(), u)
		require.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	})
}

func TestRepository_UpdateUser(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface, u user.User)
		wantNil bool
		wantErr error
	}{
		{
			name: "updated",
			setup: func(mock pgxmock.PgxPoolIface, u user.User) {
				mock.ExpectQuery(regexp.QuoteMeta(UpdateUserByID)).
					WithArgs(u.Email, u.FirstName, u.LastName, u.BirthDate, u.Address, u.PhoneNumber, u.UUID.String()).
					WillReturnRows(pgxmock.NewRows(columns).AddRow(rowFor(u)...))
			},
		},
		{
			name: "row vanished",
			setup: func(mock pgxmock.PgxPoolIface, u user.User) {
				mock.ExpectQuery(regexp.QuoteMeta(UpdateUserByID)).
					WithArgs(u.Email, u.FirstName, u.LastName, u.BirthDate, u.Address, u.PhoneNumber, u.UUID.String()).
					WillReturnRows(pgxmock.NewRows(columns))
			},
			wantNil: true,
		},
		{
			name: "email taken",
			setup: func(mock pgxmock.PgxPoolIface, u user.User) {
				mock.ExpectQuery(regexp.QuoteMeta(UpdateUserByID)).
					WithArgs(u.Email, u.FirstName, u.LastName, u.BirthDate, u.Address, u.PhoneNumber, u.UUID.String()).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantErr: user.ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			u := someUser()
			tt.setup(mock, u)

			got, err := repo.UpdateUser(context.Background(), u)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, &u, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FetchUsersByBirthDate(t *testing.T) {
	mock, repo := newMock(t)
	from := time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2004, 4, 4, 0, 0, 0, 0, time.UTC)

	a, b := someUser(), someUser()
	a.BirthDate = time.Date(2002, 2, 2, 0, 0, 0, 0, time.UTC)
	b.BirthDate = time.Date(2004, 4, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(SelectUsersByBirthDate)).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(rowFor(a)...).AddRow(rowFor(b)...))

	got, err := repo.FetchUsersByBirthDate(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.UUID, got[0].UUID)
	assert.Equal(t, b.UUID, got[1].UUID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteUser(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		mock, repo := newMock(t)
		u := someUser()
		mock.ExpectQuery(regexp.QuoteMeta(DeleteUserByID)).
			WithArgs(u.UUID.String()).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(rowFor(u)...))

		got, err := repo.DeleteUser(context.Background(), u.UUID)
		require.NoError(t, err)
		assert.Equal(t, u.UUID, got.UUID)
	})

	t.Run("absent is not an error", func(t *testing.T) {
		mock, repo := newMock(t)
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(DeleteUserByID)).
			WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows(columns))

		got, err := repo.DeleteUser(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
