package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

const redactedLength = 12

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// RedactPhone replaces a phone number with a short stable hash so call logs
// can be correlated without carrying the number itself
func RedactPhone(phone string) string {
	if phone == "" {
		return "<empty>"
	}
	return "phone:" + HashString(phone)[:redactedLength]
}
