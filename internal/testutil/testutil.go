// Package testutil provides test environment setup and utilities for
// internal package tests.
package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/klingmotionai-bot/klingmotionai/internal/api"
	"github.com/klingmotionai-bot/klingmotionai/internal/auth"
	"github.com/klingmotionai-bot/klingmotionai/internal/database"
	"github.com/klingmotionai-bot/klingmotionai/internal/offer"
	"github.com/klingmotionai-bot/klingmotionai/internal/routing"
	"github.com/klingmotionai-bot/klingmotionai/internal/session"
	"github.com/klingmotionai-bot/klingmotionai/internal/upload"
)

// FrontendURL is the stand-in public URL used across tests.
const FrontendURL = "http://frontend.test"

// TestEnv provides all dependencies needed for testing.
type TestEnv struct {
	DB         *database.SQLiteStore
	Sessions   *session.Manager
	OfferStore *offer.MemoryStore
	Offers     *offer.Service
	Uploads    upload.Store
	API        *api.API
	Router     http.Handler
}

// SetupTestEnv creates an isolated environment with in-memory SQLite and a
// fresh offer token store.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	db := database.NewSQLiteStore(":memory:", "test-secret")
	t.Cleanup(func() {
		_ = db.Close()
	})

	sessions := session.NewManager(db.SessionStore(), time.Hour*24, false)
	offerStore := offer.NewMemoryStore()
	offers := offer.New(offerStore, offer.DefaultTTL)

	uploads, err := upload.NewDiskStore(t.TempDir(), FrontendURL)
	if err != nil {
		t.Fatalf("failed to create upload store: %v", err)
	}

	return &TestEnv{
		DB:         db,
		Sessions:   sessions,
		OfferStore: offerStore,
		Offers:     offers,
		Uploads:    uploads,
		API:        api.New(offers, sessions, uploads, FrontendURL, 1024*1024),
	}
}

// SetupTestEnvWithRouter creates TestEnv and wires the full router, with
// OAuth left unconfigured.
func SetupTestEnvWithRouter(t *testing.T) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)
	google := auth.NewGoogle("", "", FrontendURL, env.Sessions, false)
	env.Router = routing.BuildRouter(routing.Options{
		API:         env.API,
		Auth:        google,
		Sessions:    env.Sessions,
		FrontendURL: FrontendURL,
	})
	return env
}

// SignInTestUser creates a session for userID and returns the cookie the
// browser would hold.
func (env *TestEnv) SignInTestUser(
	t *testing.T,
	userID string,
) *http.Cookie {
	t.Helper()

	recorder := newCookieRecorder()
	_, err := env.Sessions.Create(recorder, session.User{
		ID:       userID,
		Name:     "Test User",
		Email:    userID + "@example.com",
		Provider: "google",
	})
	if err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}

	cookie := recorder.cookie(session.CookieName)
	if cookie == nil {
		t.Fatal("session cookie was not set")
	}
	return cookie
}

// IssueTestToken mints an offer token for userID.
func (env *TestEnv) IssueTestToken(
	t *testing.T,
	userID string,
) string {
	t.Helper()
	token, err := env.Offers.Issue(userID)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}
