package resolver

import (
	"fmt"

	"github.com/TheVinhLuong102/thinc/conf"
)

// MissingRequiredFieldError reports a schema field that has neither a
// configuration value nor a declared default.
type MissingRequiredFieldError struct {
	Path  conf.Path
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q at %s", e.Field, e.Path)
}

// TypeMismatchError reports a supplied value that fails the declared type
// check of its schema field.
type TypeMismatchError struct {
	Path  conf.Path
	Field string
	Want  string
	Got   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q at %s: want %s, got %s", e.Field, e.Path, e.Want, e.Got)
}

// UnknownFieldError reports a configuration key that the schema does not
// declare. Schemas are strict: unexpected keys are errors, never silently
// ignored.
type UnknownFieldError struct {
	Path  conf.Path
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q at %s", e.Field, e.Path)
}
