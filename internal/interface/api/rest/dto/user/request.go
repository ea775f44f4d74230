package user

import "user-profile-api/pkg/optional"

type (
	// Request is the full record shape used by create and replace.
	Request struct {
		Email       string  `json:"email"`
		FirstName   string  `json:"first_name"`
		LastName    string  `json:"last_name"`
		BirthDate   string  `json:"birth_date"`
		Address     *string `json:"address"`
		PhoneNumber *string `json:"phone_number"`
	}
	// PatchRequest carries a partial record. A nil required field is left untouched;
	// address and phone_number overwrite the stored value whenever the key is present.
	PatchRequest struct {
		Email       *string                 `json:"email"`
		FirstName   *string                 `json:"first_name"`
		LastName    *string                 `json:"last_name"`
		BirthDate   *string                 `json:"birth_date"`
		Address     optional.Field[*string] `json:"address"`
		PhoneNumber optional.Field[*string] `json:"phone_number"`
	}
	SearchQuery struct {
		From string `form:"from"`
		To   string `form:"to"`
	}
)
