package diagnostic

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedShape is returned when the directive sits on anything
	// other than a struct type declaration.
	ErrUnsupportedShape = errors.New("structupdate can only be applied to structures with named fields")
	// ErrEmptyConfiguration is returned when an annotated struct declares no
	// with entries.
	ErrEmptyConfiguration = errors.New("structupdate requires at least one with entry (//structupdate:with ty=<type> func=<func>)")
	// ErrUnnamedField is returned when a struct field has no identifier.
	ErrUnnamedField = errors.New("failed to get struct field identifier")
)

// FatalError aborts the whole run. It carries the struct name only; there
// is no source position.
type FatalError struct {
	TypeName string
	Err      error
}

// Fatal wraps err as a FatalError for the given struct.
func Fatal(typeName string, err error) *FatalError {
	return &FatalError{TypeName: typeName, Err: err}
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.TypeName, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is, or wraps, a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
