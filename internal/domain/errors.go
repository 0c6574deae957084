package domain

import (
	"errors"
	"strings"
)

// Error kinds. Callers match them with errors.Is; storage failures wrap the
// underlying cause as well.
var (
	ErrValidation     = errors.New("missing required fields")
	ErrDuplicate      = errors.New("user already exists")
	ErrNotFound       = errors.New("user not found")
	ErrStorageRead    = errors.New("failed to read users file")
	ErrStorageWrite   = errors.New("failed to update users file")
	ErrMalformedStore = errors.New("invalid JSON format in users file")
)

// ValidationError reports required fields that were absent or falsy.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DuplicateError names every unique field that collided with an existing
// record, in UniqueFields order.
type DuplicateError struct {
	Fields []string
}

func (e *DuplicateError) Error() string {
	return "user with this " + strings.Join(e.Fields, ", ") + " already exists"
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }
