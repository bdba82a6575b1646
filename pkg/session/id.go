package session

import (
	"crypto/rand"
	"encoding/hex"
)

// IDLength is the number of random bytes in a session id.
const IDLength = 32

// GenerateID returns a new session id: 32 random bytes from crypto/rand,
// hex encoded (64 lowercase characters). It panics if the system entropy
// source fails, which is not a recoverable condition.
func GenerateID() string {
	b := make([]byte, IDLength)
	if _, err := rand.Read(b); err != nil {
		panic("session: crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
