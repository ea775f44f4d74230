package user

import (
	"time"

	"user-profile-api/pkg/optional"
)

// Patch is a merge-patch against a stored record. Required fields are either unset
// or carry a value; Address and PhoneNumber additionally accept a set nil, which clears them.
type Patch struct {
	Email       optional.Field[string]
	FirstName   optional.Field[string]
	LastName    optional.Field[string]
	BirthDate   optional.Field[time.Time]
	Address     optional.Field[*string]
	PhoneNumber optional.Field[*string]
}

// Apply returns the record that results from merging p into u. u is not modified.
func (u User) Apply(p Patch) User {
	out := u
	out.Email = p.Email.OrElse(u.Email)
	out.FirstName = p.FirstName.OrElse(u.FirstName)
	out.LastName = p.LastName.OrElse(u.LastName)
	out.BirthDate = p.BirthDate.OrElse(u.BirthDate)
	out.Address = cloneString(p.Address.OrElse(u.Address))
	out.PhoneNumber = cloneString(p.PhoneNumber.OrElse(u.PhoneNumber))

	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
