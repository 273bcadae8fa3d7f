package util

import "github.com/google/uuid"

// NewID generates a new unique identifier for sessions and requests.
//
// This function creates a UUID-based unique identifier that can be used for
// session tracking and correlation throughout the module.
//
// Returns a string representation of a new UUID.
func NewID() string { return uuid.NewString() }
