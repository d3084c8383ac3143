package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Session is a server-side record of an issued admin token. Only the token hash is stored.
type Session struct {
	TokenHash string
	AdminID   int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Issued is what a successful login hands back to the caller: the raw token is never persisted.
type Issued struct {
	Token     string
	AdminID   int64
	Username  string
	ExpiresAt time.Time
}

func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
