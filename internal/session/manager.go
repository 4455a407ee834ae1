package session

import (
	"fmt"
	"net/http"
	"time"
)

// CookieName is the session cookie issued to browsers.
const CookieName = "km_session"

// Manager issues and resolves session cookies against a Store.
type Manager struct {
	store    Store
	lifetime time.Duration
	secure   bool
}

func NewManager(
	store Store,
	lifetime time.Duration,
	secure bool,
) *Manager {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Manager{
		store:    store,
		lifetime: lifetime,
		secure:   secure,
	}
}

// Create starts a session for user and sets the cookie on the response.
func (m *Manager) Create(
	w http.ResponseWriter,
	user User,
) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := time.Now()
	session := &Session{
		ID:        id,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(m.lifetime),
	}
	if err := m.store.Insert(session); err != nil {
		return nil, fmt.Errorf("%w: couldn't insert session: %v", ErrInternal, err)
	}

	http.SetCookie(w, m.cookie(id, int(m.lifetime.Seconds())))
	return session, nil
}

// Get resolves the request's session cookie, returning ErrNotFound for
// missing, unknown, or expired sessions.
func (m *Manager) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(cookie.Value, time.Now())
}

// Destroy deletes the request's session record and expires the cookie.
func (m *Manager) Destroy(
	w http.ResponseWriter,
	r *http.Request,
) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, m.cookie("", -1))
	if err := m.store.Delete(cookie.Value); err != nil {
		return fmt.Errorf("%w: couldn't delete session: %v", ErrInternal, err)
	}
	return nil
}

// SetOfferCompleted durably records that the session's owner redeemed an
// offer token.
func (m *Manager) SetOfferCompleted(id string) error {
	if err := m.store.SetOfferCompleted(id); err != nil {
		return fmt.Errorf("%w: couldn't persist offer flag: %v", ErrInternal, err)
	}
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
