package helpers

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256 returns the hex encoded SHA-256 digest of input.
func SHA256(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

// ShortID returns the first n hex digits of the SHA-256 digest of input.
func ShortID(input string, n int) string {
	id := SHA256(input)
	if n > 0 && n < len(id) {
		return id[:n]
	}
	return id
}
