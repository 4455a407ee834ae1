package offer

import "time"

// Store holds the authoritative mapping from token string to its record.
type Store interface {
	// Put inserts a new record, returning ErrDuplicateToken if the token
	// string already exists.
	Put(record *Token) error

	// Get returns a copy of the record, or ErrTokenNotFound.
	Get(token string) (Token, error)

	// MarkUsed atomically flips the record's used flag to true and reports
	// the previous state, so the caller can tell "already used" apart from
	// "freshly consumed". Returns ErrTokenNotFound for unknown tokens.
	MarkUsed(token string) (wasUsed bool, err error)

	// Sweep removes records that are used or were created before cutoff,
	// returning how many were removed.
	Sweep(cutoff time.Time) int
}
