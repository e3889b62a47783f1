package common

import "errors"

// Business logic errors
var (
	// Precondition errors: reported synchronously, never reach the network.
	ErrNoIdentity      = errors.New("display name not set")
	ErrEmptyContent    = errors.New("content must not be empty")
	ErrInvalidCategory = errors.New("unknown post category")

	// Feed errors
	ErrPostNotFound = errors.New("post not found")

	// Query errors
	ErrInvalidSort = errors.New("unknown sort mode")
)
