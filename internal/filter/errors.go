package filter

import (
	"errors"

	"notification-router/internal/fields"
)

var (
	// ErrInvalidOperator is returned for operator names outside equals, not_equals, in, not_in
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidOperatorValue is returned when in or not_in is given a non-list value
	ErrInvalidOperatorValue = errors.New("invalid operator value")

	// ErrUnregisteredField is returned when a filter names a field the registry does not know
	ErrUnregisteredField = fields.ErrUnregisteredField

	// ErrInvalidBloomParameters is returned for non-positive Bloom filter sizes
	ErrInvalidBloomParameters = errors.New("invalid bloom filter parameters")
)
