package repository

import "errors"

var (
	// ErrNotFound is wrapped by lookups that match no row.
	ErrNotFound = errors.New("not found")

	// ErrConflict is wrapped when a unique constraint rejects a write.
	ErrConflict = errors.New("already exists")
)
