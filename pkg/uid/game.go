package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const gameIDBytes = 8

// GenerateGameID returns a random 16 character hex id used to tag a game in logs.
func GenerateGameID() (string, error) {
	bytes := make([]byte, gameIDBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate game ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
