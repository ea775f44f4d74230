package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	// User is an immutable snapshot of a stored record. Updates produce a new value.
	User struct {
		UUID        UUID
		Email       string
		FirstName   string
		LastName    string
		BirthDate   time.Time
		Address     *string
		PhoneNumber *string
	}
	Users []*User
)

// WithID returns a copy of u carrying the given identifier.
func (u User) WithID(id UUID) User {
	u.UUID = id
	return u
}

// Replace overwrites every client-owned field with the values of src. The identifier is kept.
func (u User) Replace(src User) User {
	src.UUID = u.UUID
	return src
}
