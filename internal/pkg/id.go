package pkg

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateSessionID - generates a unique, time-ordered session ID.
func GenerateSessionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	return id.String(), nil
}
