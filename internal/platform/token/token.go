// Package token generates URL-safe capability tokens for emergency access
// links. A token is the sole credential for the public snapshot endpoint, so
// it must come from a CSPRNG and survive being pasted into a URL path
// untouched.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// ByteLength is the number of random bytes per token (192 bits of entropy).
const ByteLength = 24

// New returns a fresh URL-safe token: 24 random bytes encoded with the
// unpadded URL-safe base64 alphabet, always 32 characters of
// [A-Za-z0-9_-].
func New() (string, error) {
	buf := make([]byte, ByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
