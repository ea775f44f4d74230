// Package optional provides a field wrapper that tells "not supplied" apart from
// "supplied", including a supplied JSON null.
package optional

import "encoding/json"

// Field is either unset (the zero value) or set to a value, which may itself be a zero value.
type Field[T any] struct {
	value T
	set   bool
}

func Of[T any](v T) Field[T] { return Field[T]{value: v, set: true} }

func (f Field[T]) IsSet() bool { return f.set }

func (f Field[T]) Get() (T, bool) { return f.value, f.set }

// OrElse returns the held value when set, def otherwise.
func (f Field[T]) OrElse(def T) T {
	if f.set {
		return f.value
	}
	return def
}

// UnmarshalJSON is only invoked for keys present in the document, so reaching it marks the field set.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.value = v
	f.set = true
	return nil
}
