package utils

import (
	"github.com/google/uuid"
)

// GenerateID creates a new UUID, used for notice identity and request
// correlation in logs.
func GenerateID() string {
	return uuid.New().String()
}
