package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would break a unique constraint,
// e.g. a second background for the same section.
var ErrConflict = errors.New("conflict")
