package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// GenerateID creates a stable identifier for an indexed embedding row
// from the command text and its catalog position.
func GenerateID(command string, position int) string {
	hasher := sha256.New()
	hasher.Write([]byte(command))
	hasher.Write([]byte(strconv.Itoa(position)))
	return hex.EncodeToString(hasher.Sum(nil))[:16] // Use first 16 chars of the hash
}
