package offer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_StoresRecord(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)

	before := time.Now()
	token, err := svc.Issue("user_1")
	require.NoError(t, err)
	require.Len(t, token, 64) // 32 random bytes, hex encoded

	record, err := store.Get(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", record.OwnerID)
	assert.False(t, record.Used)
	assert.False(t, record.CreatedAt.Before(before))
}

func TestIssue_TokensAreUnique(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.Issue("user_1")
		require.NoError(t, err)
		require.False(t, seen[token], "token issued twice: %s", token)
		seen[token] = true
	}
}

// collidingStore rejects the first n inserts as duplicates.
type collidingStore struct {
	*MemoryStore
	rejections int
	puts       int
}

func (s *collidingStore) Put(record *Token) error {
	s.puts++
	if s.puts <= s.rejections {
		return ErrDuplicateToken
	}
	return s.MemoryStore.Put(record)
}

func TestIssue_RetriesOnCollision(t *testing.T) {
	store := &collidingStore{MemoryStore: NewMemoryStore(), rejections: 2}
	svc := New(store, DefaultTTL)

	token, err := svc.Issue("user_1")
	require.NoError(t, err)
	assert.Equal(t, 3, store.puts)

	_, err = store.Get(token)
	assert.NoError(t, err)
}

func TestIssue_GivesUpAfterRepeatedCollisions(t *testing.T) {
	store := &collidingStore{MemoryStore: NewMemoryStore(), rejections: maxIssueAttempts}
	svc := New(store, DefaultTTL)

	_, err := svc.Issue("user_1")
	require.ErrorIs(t, err, ErrInternal)
}

func TestIssue_IndependentTokensPerUser(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)

	// issuing a new token must not invalidate outstanding ones
	first, err := svc.Issue("user_1")
	require.NoError(t, err)
	second, err := svc.Issue("user_1")
	require.NoError(t, err)

	require.NoError(t, svc.Redeem(second, "user_1", time.Now()))
	require.NoError(t, svc.Redeem(first, "user_1", time.Now()))
}
