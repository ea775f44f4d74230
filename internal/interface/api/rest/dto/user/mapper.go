package user

import (
	"errors"
	"time"

	"user-profile-api/internal/domain/user"
	"user-profile-api/pkg/optional"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, want YYYY-MM-DD")

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:          uDomain.UUID,
		Email:       uDomain.Email,
		FirstName:   uDomain.FirstName,
		LastName:    uDomain.LastName,
		BirthDate:   uDomain.BirthDate.Format(DateLayout),
		Address:     uDomain.Address,
		PhoneNumber: uDomain.PhoneNumber,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToDomainUser(uRequest Request) (user.User, error) {
	d, err := ParseDate(uRequest.BirthDate)
	if err != nil {
		return user.User{}, err
	}

	var u = user.User{
		Email:       uRequest.Email,
		FirstName:   uRequest.FirstName,
		LastName:    uRequest.LastName,
		BirthDate:   d,
		Address:     uRequest.Address,
		PhoneNumber: uRequest.PhoneNumber,
	}

	return u, nil
}

func ToDomainPatch(pRequest PatchRequest) (user.Patch, error) {
	var p user.Patch

	if pRequest.Email != nil {
		p.Email = optional.Of(*pRequest.Email)
	}
	if pRequest.FirstName != nil {
		p.FirstName = optional.Of(*pRequest.FirstName)
	}
	if pRequest.LastName != nil {
		p.LastName = optional.Of(*pRequest.LastName)
	}
	if pRequest.BirthDate != nil {
		d, err := ParseDate(*pRequest.BirthDate)
		if err != nil {
			return user.Patch{}, err
		}
		p.BirthDate = optional.Of(d)
	}
	p.Address = pRequest.Address
	p.PhoneNumber = pRequest.PhoneNumber

	return p, nil
}
