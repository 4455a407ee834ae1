// Package session implements cookie-backed login sessions. The browser
// holds an opaque random session ID in an HttpOnly cookie; everything else,
// including the durable "offer completed" flag, lives server-side.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// DefaultLifetime matches the cookie MaxAge of the original site: one day.
const DefaultLifetime = time.Hour * 24

var (
	ErrNotFound = errors.New("session not found")
	ErrInternal = errors.New("internal error")
)

// User is the profile captured from the identity provider at sign-in.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Provider string `json:"provider"`
}

// Session is a server-side login record addressed by an unguessable ID.
type Session struct {
	ID             string
	User           User
	OfferCompleted bool
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

func generateSessionID() (string, error) {
	randomBytes := make([]byte, 32)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random session bytes: %v", err)
	}
	return hex.EncodeToString(randomBytes), nil
}
