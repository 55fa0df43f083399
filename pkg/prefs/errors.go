package prefs

import (
	"fmt"
	"reflect"

	"github.com/nikmy/gameprefs/pkg/errors"
)

// None of these errors is fatal. The registry logs them and falls back to
// defaults, the previous document, or skipping the save.

var ErrDuplicateRegistration = errors.Error("preferences type already registered")

// RegistrationError reports a second registration under an existing key.
// The first registration stays in effect.
type RegistrationError struct {
	Key       TypeKey
	Existing  reflect.Type
	Duplicate reflect.Type
}

func (e *RegistrationError) Error() string {
	if e.Existing == e.Duplicate {
		return fmt.Sprintf("preferences %q: %s registered twice", e.Key, e.Duplicate)
	}
	return fmt.Sprintf("preferences %q: %s clashes with %s", e.Key, e.Duplicate, e.Existing)
}

func (e *RegistrationError) Unwrap() error { return ErrDuplicateRegistration }

// DecodeError means a stored value does not fit its type. The type falls back
// to its default.
type DecodeError struct {
	Key TypeKey
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("can't decode preferences %q: %s", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError means a live value could not be serialized. Its previous
// document entry is kept.
type EncodeError struct {
	Key TypeKey
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("can't encode preferences %q: %s", e.Key, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// StorageReadError means the backend could not be read or parsed. Loading
// continues with an empty document.
type StorageReadError struct {
	Location string
	Err      error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("can't read preferences from %s: %s", e.Location, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// StorageWriteError means a save did not reach the backend. The in-memory
// state stays authoritative until the next successful save.
type StorageWriteError struct {
	Location string
	Err      error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("can't write preferences to %s: %s", e.Location, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }
