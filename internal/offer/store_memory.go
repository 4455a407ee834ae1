package offer

import (
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps token records in process memory. Tokens vanish on
// restart; the site treats that as an acceptable failure mode since a user
// can always mint a fresh token from the Create button.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]*Token
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]*Token),
	}
}

func (s *MemoryStore) Put(record *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[record.Token]; exists {
		return fmt.Errorf("couldn't insert token record: %w", ErrDuplicateToken)
	}

	copied := *record
	s.tokens[record.Token] = &copied
	return nil
}

func (s *MemoryStore) Get(token string) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tokens[token]
	if !ok {
		return Token{}, ErrTokenNotFound
	}
	return *record, nil
}

// MarkUsed is the sole mutation point for a record. Two concurrent
// redemptions of the same token serialize here; exactly one observes
// wasUsed == false.
func (s *MemoryStore) MarkUsed(token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.tokens[token]
	if !ok {
		return false, ErrTokenNotFound
	}

	wasUsed := record.Used
	record.Used = true
	return wasUsed, nil
}

func (s *MemoryStore) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, record := range s.tokens {
		if record.Used || record.CreatedAt.Before(cutoff) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
