package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - generates a new unique session ID.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
