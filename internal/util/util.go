package util

import (
	"github.com/google/uuid"
)

// NewGameID returns a unique identifier for a game
func NewGameID() string {
	return uuid.New().String()
}
