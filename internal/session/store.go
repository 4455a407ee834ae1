package session

import "time"

// Store handles persistence of session records. Implementations are keyed
// by the raw session ID but are expected to hash it at rest, so a stolen
// database never yields usable cookies.
type Store interface {
	Insert(session *Session) error
	Get(id string, now time.Time) (*Session, error)
	Delete(id string) error
	SetOfferCompleted(id string) error
	DeleteExpired(now time.Time) (int, error)
}
