package application

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a record with the same identity exists.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrStaleVersion is returned when a mutation carries a version token that
	// another writer has already superseded.
	ErrStaleVersion = errors.New("application: stale version")
	// ErrTenantRequired is returned when an operation is invoked without an
	// explicit tenant identifier.
	ErrTenantRequired = errors.New("application: tenant id is required")
)

// ValidationError accumulates human-readable messages for every rule a
// submission violates. The full list is surfaced inline in the form and
// blocks persistence; no network call is made while it is non-empty.
type ValidationError struct {
	Errors []string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.Errors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(v.Errors, "; ")
}

// HasErrors reports whether any messages were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.Errors) > 0
}

// add records a validation message, preserving submission order.
func (v *ValidationError) add(message string) {
	v.Errors = append(v.Errors, message)
}
