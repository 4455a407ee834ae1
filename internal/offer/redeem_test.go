package offer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueAt(t *testing.T, store *MemoryStore, ownerID string, createdAt time.Time) string {
	t.Helper()
	token, err := generateToken()
	require.NoError(t, err)
	require.NoError(t, store.Put(&Token{
		Token:     token,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
	}))
	return token
}

func TestRedeem_Success(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)
	t0 := time.Now()
	token := issueAt(t, store, "user_1", t0)

	err := svc.Redeem(token, "user_1", t0.Add(time.Minute))
	require.NoError(t, err)

	record, err := store.Get(token)
	require.NoError(t, err)
	assert.True(t, record.Used)
}

func TestRedeem_SingleUse(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)
	t0 := time.Now()
	token := issueAt(t, store, "user_1", t0)

	require.NoError(t, svc.Redeem(token, "user_1", t0.Add(time.Minute)))

	err := svc.Redeem(token, "user_1", t0.Add(time.Minute*2))
	require.ErrorIs(t, err, ErrAlreadyUsed)
}

func TestRedeem_MissingToken(t *testing.T) {
	svc := New(NewMemoryStore(), DefaultTTL)

	err := svc.Redeem("", "user_1", time.Now())
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestRedeem_NotAuthenticated(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)
	token := issueAt(t, store, "user_1", time.Now())

	// a perfectly valid token never redeems without an authenticated caller
	err := svc.Redeem(token, "", time.Now())
	require.ErrorIs(t, err, ErrNotAuthenticated)

	record, err := store.Get(token)
	require.NoError(t, err)
	assert.False(t, record.Used)
}

func TestRedeem_UnknownToken(t *testing.T) {
	svc := New(NewMemoryStore(), DefaultTTL)

	err := svc.Redeem("no-such-token", "user_1", time.Now())
	require.ErrorIs(t, err, ErrUnknownToken)
}

func TestRedeem_WrongOwner(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)
	t0 := time.Now()
	token := issueAt(t, store, "user_1", t0)

	err := svc.Redeem(token, "user_2", t0.Add(time.Minute))
	require.ErrorIs(t, err, ErrWrongOwner)

	// the rejected attempt must not consume the token
	require.NoError(t, svc.Redeem(token, "user_1", t0.Add(time.Minute)))
}

func TestRedeem_Expiry(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)
	t0 := time.Now()

	// exactly at the TTL boundary still redeems
	token := issueAt(t, store, "user_1", t0)
	require.NoError(t, svc.Redeem(token, "user_1", t0.Add(DefaultTTL)))

	// one millisecond past the boundary is expired
	token = issueAt(t, store, "user_1", t0)
	err := svc.Redeem(token, "user_1", t0.Add(DefaultTTL+time.Millisecond))
	require.ErrorIs(t, err, ErrExpired)

	// sixteen minutes out is well past the default TTL
	token = issueAt(t, store, "user_1", t0)
	err = svc.Redeem(token, "user_1", t0.Add(time.Minute*16))
	require.ErrorIs(t, err, ErrExpired)
}

func TestRedeem_ChecksOrdered(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)
	t0 := time.Now()

	// used + wrong owner + expired: already-used wins
	token := issueAt(t, store, "user_1", t0.Add(-time.Hour))
	_, err := store.MarkUsed(token)
	require.NoError(t, err)
	err = svc.Redeem(token, "user_2", t0)
	require.ErrorIs(t, err, ErrAlreadyUsed)

	// wrong owner + expired: ownership is checked before expiry
	token = issueAt(t, store, "user_1", t0.Add(-time.Hour))
	err = svc.Redeem(token, "user_2", t0)
	require.ErrorIs(t, err, ErrWrongOwner)
}

func TestRedeem_ConcurrentRace(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)
	t0 := time.Now()
	token := issueAt(t, store, "user_1", t0)

	var start sync.WaitGroup
	start.Add(1)
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			start.Wait()
			results <- svc.Redeem(token, "user_1", t0.Add(time.Minute))
		}()
	}
	start.Done()

	var successes, alreadyUsed int
	for i := 0; i < 2; i++ {
		switch err := <-results; err {
		case nil:
			successes++
		case ErrAlreadyUsed:
			alreadyUsed++
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent redemption may succeed")
	assert.Equal(t, 1, alreadyUsed)
}

func TestSweep_PreservesLiveTokens(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store, DefaultTTL)
	t0 := time.Now()

	live := issueAt(t, store, "user_1", t0)
	expired := issueAt(t, store, "user_1", t0.Add(-time.Hour))
	spent := issueAt(t, store, "user_1", t0)
	require.NoError(t, svc.Redeem(spent, "user_1", t0))

	removed := svc.Sweep(t0)
	assert.Equal(t, 2, removed)

	// live token redeems after the sweep; the swept ones read as unknown
	require.NoError(t, svc.Redeem(live, "user_1", t0.Add(time.Minute)))
	require.ErrorIs(t, svc.Redeem(expired, "user_1", t0), ErrUnknownToken)
}
