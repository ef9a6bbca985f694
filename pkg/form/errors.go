package form

import "errors"

var (
	// ErrUnknownField is returned when an operation names an id the schema
	// does not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrNotOptional is returned when toggling a field that is not an
	// optional toggle.
	ErrNotOptional = errors.New("form: field is not optional")
	// ErrFieldInactive is returned when editing an optional field that is not
	// activated.
	ErrFieldInactive = errors.New("form: field is not active")
	// ErrNotFileField is returned by file operations on non-file fields.
	ErrNotFileField = errors.New("form: field is not a file field")
	// ErrInvalid is returned when submitting a form with validation errors.
	ErrInvalid = errors.New("form: form has validation errors")
	// ErrInvalidSchema wraps schema authoring problems.
	ErrInvalidSchema = errors.New("form: invalid schema")
)
