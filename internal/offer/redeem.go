package offer

import (
	"errors"
	"fmt"
	"time"
)

// Redeem validates and consumes a token. A nil return means the redemption
// succeeded and the caller should mark the session's durable "offer
// completed" flag. Checks run in a fixed order and short-circuit on the
// first failure; nothing is mutated until every check has passed.
func (s *Service) Redeem(
	token string,
	requesterID string,
	now time.Time,
) error {
	if token == "" {
		return ErrMissingToken
	}
	if requesterID == "" {
		return ErrNotAuthenticated
	}

	record, err := s.store.Get(token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return ErrUnknownToken
		}
		return fmt.Errorf("%w: couldn't look up token: %v", ErrInternal, err)
	}

	if record.Used {
		return ErrAlreadyUsed
	}
	if record.OwnerID != requesterID {
		return ErrWrongOwner
	}
	if now.Sub(record.CreatedAt) > s.ttl {
		return ErrExpired
	}

	// The atomic flip doubles as the concurrency guard: two redemptions
	// may both pass the checks above, but only one sees wasUsed == false.
	wasUsed, err := s.store.MarkUsed(token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return ErrUnknownToken
		}
		return fmt.Errorf("%w: couldn't consume token: %v", ErrInternal, err)
	}
	if wasUsed {
		return ErrAlreadyUsed
	}

	return nil
}
