package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown category or file type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSearchUnavailable indicates no document set has been built yet.
	ErrSearchUnavailable = errors.New("search engine unavailable")

	// ErrArchiveUnavailable indicates the archive root cannot be read.
	ErrArchiveUnavailable = errors.New("archive unavailable")
)
