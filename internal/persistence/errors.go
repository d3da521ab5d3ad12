package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a record with the same identity exists.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrStaleVersion is returned when an update carries a version token that
	// no longer matches the stored record.
	ErrStaleVersion = errors.New("persistence: stale version")
	// ErrConstraintViolation is returned when a record violates a storage
	// level check constraint.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a referenced record is missing.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
