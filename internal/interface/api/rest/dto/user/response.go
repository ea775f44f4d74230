package user

import (
	"github.com/google/uuid"
)

type (
	User struct {
		ID          uuid.UUID `json:"id"`
		Email       string    `json:"email"`
		FirstName   string    `json:"first_name"`
		LastName    string    `json:"last_name"`
		BirthDate   string    `json:"birth_date"`
		Address     *string   `json:"address"`
		PhoneNumber *string   `json:"phone_number"`
	}
	Users []User
)
