package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrDuplicate surfaces the partial unique index on confirmed
	// (user, activity) pairs.
	ErrDuplicate = errors.New("confirmed booking already exists for this user and activity")
)
