package validator

import (
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	domain "user-profile-api/internal/domain/user"
	"user-profile-api/internal/interface/api/rest/dto/user"
)

const (
	msgNotEmpty  = "must not be empty"
	msgEmail     = "must be a well-formed email address"
	msgNotNull   = "must not be null"
	msgPast      = "must be a past date"
	msgDate      = "must be a date in YYYY-MM-DD format"
	msgMinLength = "shouldn't be empty"
)

// FieldError reports the first request field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func fieldErr(field, msg string) *FieldError { return &FieldError{Field: field, Message: msg} }

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ValidateUser checks a create/replace body and returns it with names in NFC form.
func ValidateUser(r user.Request, today time.Time) (user.Request, error) {
	switch {
	case r.Email == "":
		return r, fieldErr("email", msgNotEmpty)
	case !isEmail(r.Email):
		return r, fieldErr("email", msgEmail)
	case r.FirstName == "":
		return r, fieldErr("first_name", msgNotEmpty)
	case r.LastName == "":
		return r, fieldErr("last_name", msgNotEmpty)
	case r.BirthDate == "":
		return r, fieldErr("birth_date", msgNotNull)
	}
	if err := checkPastDate(r.BirthDate, today); err != nil {
		return r, err
	}

	r.FirstName = norm.NFC.String(r.FirstName)
	r.LastName = norm.NFC.String(r.LastName)

	return r, nil
}

// ValidatePatch checks the supplied fields of a partial body. Absent or null
// required fields are not validated.
func ValidatePatch(r user.PatchRequest, today time.Time) (user.PatchRequest, error) {
	if r.Email != nil && !isEmail(*r.Email) {
		return r, fieldErr("email", msgEmail)
	}
	if r.FirstName != nil {
		if utf8.RuneCountInString(*r.FirstName) < 1 {
			return r, fieldErr("first_name", msgMinLength)
		}
		n := norm.NFC.String(*r.FirstName)
		r.FirstName = &n
	}
	if r.LastName != nil {
		if utf8.RuneCountInString(*r.LastName) < 1 {
			return r, fieldErr("last_name", msgMinLength)
		}
		n := norm.NFC.String(*r.LastName)
		r.LastName = &n
	}
	if r.BirthDate != nil {
		if err := checkPastDate(*r.BirthDate, today); err != nil {
			return r, err
		}
	}

	return r, nil
}

// ValidateRange parses the inclusive search bounds. Ordering is left to the service.
func ValidateRange(q user.SearchQuery) (from, to time.Time, err error) {
	if q.From == "" {
		return from, to, fieldErr("from", msgNotNull)
	}
	if q.To == "" {
		return from, to, fieldErr("to", msgNotNull)
	}
	if from, err = user.ParseDate(q.From); err != nil {
		return from, to, fieldErr("from", msgDate)
	}
	if to, err = user.ParseDate(q.To); err != nil {
		return from, to, fieldErr("to", msgDate)
	}
	return from, to, nil
}

func checkPastDate(s string, today time.Time) error {
	d, err := user.ParseDate(s)
	if err != nil {
		return fieldErr("birth_date", msgDate)
	}
	if !d.Before(domain.Date(today)) {
		return fieldErr("birth_date", msgPast)
	}
	return nil
}

// isEmail accepts a bare RFC 5322 addr-spec, without display name or angle brackets.
func isEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Name == "" && a.Address == s
}

