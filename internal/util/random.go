package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomString returns n hex characters for filename uniqueness.
func GenerateRandomString(n int) string {
	b := make([]byte, (n+1)/2)
	rand.Read(b)
	return hex.EncodeToString(b)[:n]
}
