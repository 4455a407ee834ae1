// Package offer implements the one-time CPA offer token flow: issuing a
// fresh token bound to a signed-in user, and redeeming it when the offer
// network redirects the browser back to us.
package offer

import (
	"errors"
	"time"
)

// DefaultTTL bounds how long an issued token stays redeemable.
// Prevents reuse of old links.
const DefaultTTL = time.Minute * 15

var (
	ErrDuplicateToken = errors.New("duplicate token")
	ErrTokenNotFound  = errors.New("token not found")
	ErrInternal       = errors.New("internal error")
)

// Redemption rejections. Every rejection maps to the same generic error
// redirect for the client; the distinct reasons exist for server logs only.
var (
	ErrMissingToken     = errors.New("missing token")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnknownToken     = errors.New("unknown token")
	ErrAlreadyUsed      = errors.New("token already used")
	ErrWrongOwner       = errors.New("token owned by another user")
	ErrExpired          = errors.New("token expired")
)

// Token is a one-time capability proving its owner completed an external
// engagement step. Possession alone is not enough: the redeeming session
// must match OwnerID, the token must be unused, and it must be younger
// than the TTL.
type Token struct {
	Token     string
	OwnerID   string
	CreatedAt time.Time
	Used      bool
}

// Service coordinates token issuance and redemption against a Store.
type Service struct {
	store Store
	ttl   time.Duration
}

func New(store Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		store: store,
		ttl:   ttl,
	}
}
