package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID        uuid.UUID
		Email       string
		FirstName   string
		LastName    string
		BirthDate   time.Time
		Address     *string
		PhoneNumber *string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

func (u *User) scanDest() []any {
	return []any{
		&u.UUID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.BirthDate,
		&u.Address,
		&u.PhoneNumber,

		&u.CreatedAt,
		&u.UpdatedAt,
	}
}
