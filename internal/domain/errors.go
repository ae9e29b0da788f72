package domain

import "errors"

// Sentinel errors shared by repositories, services and handlers. Store
// failures that are not one of these propagate to the caller unchanged.
var (
	// ErrNotFound - a referenced video, podcast or user does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrSelfFollow - a user attempted to follow themselves. Rejected
	// before any store call is made.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrInvalidInput - missing identity or malformed id, rejected
	// synchronously before any store interaction.
	ErrInvalidInput = errors.New("invalid input")
)
