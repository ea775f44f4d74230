package user

import (
	"context"
	"time"
)

// Repository is the record store. Lookups return nil, nil when nothing matches.
type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, req User) (*User, error)
	FetchUsersByBirthDate(ctx context.Context, from, to time.Time) (Users, error)
	DeleteUser(ctx context.Context, uuid UUID) (*User, error)
}
