package utils

import (
	"github.com/google/uuid"
)

// GenerateUserID returns a random (v4) id for accounts and sessions.
func GenerateUserID() string {
	return uuid.NewString()
}

// GenerateOrderedID returns a time-ordered (v7) id so documents sort by
// creation when ordered by _id.
func GenerateOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
