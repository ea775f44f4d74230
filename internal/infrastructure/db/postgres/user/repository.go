package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"user-profile-api/internal/domain/user"
	"user-profile-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	return r.queryOne(ctx, SelectUserByID, uuid.String())
}

func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, ExistsUserByEmail, email).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Email, req.FirstName, req.LastName, user.Date(req.BirthDate), req.Address, req.PhoneNumber,
	).Scan(u.scanDest()...)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(ctx, UpdateUserByID,
		req.Email, req.FirstName, req.LastName, user.Date(req.BirthDate), req.Address, req.PhoneNumber,
		req.UUID.String(),
	).Scan(u.scanDest()...)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, user.ErrEmailAlreadyExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUsersByBirthDate(ctx context.Context, from, to time.Time) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsersByBirthDate, user.Date(from), user.Date(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := Users{}
	for rows.Next() {
		u := new(User)
		if err = rows.Scan(u.scanDest()...); err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) DeleteUser(ctx context.Context, uuid user.UUID) (*user.User, error) {
	return r.queryOne(ctx, DeleteUserByID, uuid.String())
}

func (r *Repository) queryOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	u := new(User)
	if err := r.db.QueryRow(ctx, query, args...).Scan(u.scanDest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
