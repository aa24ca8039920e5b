package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// TokenHashMatches compares a raw token against a stored hash in constant time.
func TokenHashMatches(storedHash string, token string) bool {
	computed := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(computed)) == 1
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
