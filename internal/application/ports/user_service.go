package ports

import (
	"context"
	"time"

	"user-profile-api/internal/domain/user"
)

type UserService interface {
	CreateUser(ctx context.Context, u user.User) (*user.User, error)
	ReplaceUser(ctx context.Context, id user.UUID, u user.User) (*user.User, error)
	PatchUser(ctx context.Context, id user.UUID, p user.Patch) (*user.User, error)
	SearchByBirthDate(ctx context.Context, from, to time.Time) (user.Users, error)
	DeleteUser(ctx context.Context, id user.UUID) error
}
