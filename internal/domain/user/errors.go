package user

import (
	"errors"
	"fmt"
)

// ErrEmailAlreadyExists is reported by stores when the unique email constraint rejects a write.
var ErrEmailAlreadyExists = errors.New("email already exists")

type ErrorKind int

const (
	KindUnderage ErrorKind = iota + 1
	KindDuplicateEmail
	KindNotFound
	KindRangeInverted
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnderage:
		return "underage"
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindNotFound:
		return "not_found"
	case KindRangeInverted:
		return "range_inverted"
	default:
		return "unknown"
	}
}

// BusinessError is a client-fault outcome of a domain rule. Two business errors
// match under errors.Is when their kinds are equal, whatever the message.
type BusinessError struct {
	Kind    ErrorKind
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

func (e *BusinessError) Is(target error) bool {
	var be *BusinessError
	if !errors.As(target, &be) {
		return false
	}
	return be.Kind == e.Kind
}

// ErrUnderage is a match target for errors.Is; the returned error comes from Underage.
var (
	ErrUnderage       = &BusinessError{Kind: KindUnderage, Message: "user is underage"}
	ErrDuplicateEmail = &BusinessError{Kind: KindDuplicateEmail, Message: "Users with provided email is exist"}
	ErrNotFound       = &BusinessError{Kind: KindNotFound, Message: "User is not found"}
	ErrRangeInverted  = &BusinessError{Kind: KindRangeInverted, Message: "From should not exceed to"}
)

// Underage builds the eligibility error for the configured minimum age.
func Underage(minAge int) *BusinessError {
	return &BusinessError{
		Kind:    KindUnderage,
		Message: fmt.Sprintf("To register you have to be %d years old", minAge),
	}
}

// AsBusinessError reports whether err carries a business error and returns it.
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
