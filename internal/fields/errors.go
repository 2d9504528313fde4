package fields

import "errors"

var (
	// ErrUnregisteredField is returned when a field name has no extractor
	ErrUnregisteredField = errors.New("field is not registered")

	// ErrUnknownComputeFunction is returned when a computed field names a function missing from the table
	ErrUnknownComputeFunction = errors.New("compute function not found")

	// ErrInvalidDefinition is returned for empty names, empty paths or duplicate fields
	ErrInvalidDefinition = errors.New("invalid field definition")
)
