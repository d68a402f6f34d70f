package application

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a create collides with an existing id.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrStaffRequired is returned when a completion is attempted without
	// naming the staff member performing it.
	ErrStaffRequired = errors.New("application: staff member required")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// PersistenceError wraps a storage failure that reached the caller, tagged
// with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (p *PersistenceError) Error() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", p.Op, p.Err)
}

// Unwrap exposes the underlying failure.
func (p *PersistenceError) Unwrap() error {
	if p == nil {
		return nil
	}
	return p.Err
}
