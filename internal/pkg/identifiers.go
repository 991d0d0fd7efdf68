package pkg

import "github.com/google/uuid"

// GenerateUserID - generates a unique identifier for a user record.
func GenerateUserID() string {
	return uuid.NewString()
}

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
