package vortaro

import "errors"

var (
	// ErrUnknownKind is returned for an element name outside the schema.
	ErrUnknownKind = errors.New("unknown element kind")
	// ErrMismatchedEnd is returned when an end tag does not close the open element.
	ErrMismatchedEnd = errors.New("mismatched end element")
	// ErrEmptyDocument is returned when no root element was completed.
	ErrEmptyDocument = errors.New("empty document")
	// ErrInvalidEncoding is returned by Decode for a malformed generic value.
	ErrInvalidEncoding = errors.New("invalid generic encoding")
)
