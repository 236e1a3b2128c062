package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSessionID generates an opaque session id, e.g. "sess_a1b2c3...".
func NewSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("sess_%s", hex.EncodeToString(b)), nil
}
