// Package auth implements Google sign-in and the session-facing auth
// endpoints (/auth/me, /auth/logout).
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/klingmotionai-bot/klingmotionai/internal/session"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// stateCookie carries the anti-CSRF state between /auth/google and the
// provider callback.
const stateCookie = "km_oauth_state"

const stateTTL = time.Minute * 10

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Google runs the OAuth authorization-code flow against Google and turns a
// provider profile into a login session.
type Google struct {
	oauth       *oauth2.Config
	sessions    *session.Manager
	frontendURL string
	userInfoURL string
	secure      bool
}

func NewGoogle(
	clientID string,
	clientSecret string,
	frontendURL string,
	sessions *session.Manager,
	secure bool,
) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  frontendURL + "/auth/google/callback",
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		sessions:    sessions,
		frontendURL: frontendURL,
		userInfoURL: googleUserInfoURL,
		secure:      secure,
	}
}

// Configured reports whether OAuth credentials were provided. Unconfigured
// deployments keep the routes but answer 503.
func (g *Google) Configured() bool {
	return g.oauth.ClientID != "" && g.oauth.ClientSecret != ""
}

// Start redirects the browser to Google's consent screen.
func (g *Google) Start() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.Configured() {
			http.Error(w, "OAuth not configured", http.StatusServiceUnavailable)
			return
		}

		state, err := generateState()
		if err != nil {
			logAuthErr(r, fmt.Sprintf("couldn't generate oauth state: %v", err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   int(stateTTL.Seconds()),
			HttpOnly: true,
			Secure:   g.secure,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, g.oauth.AuthCodeURL(state), http.StatusFound)
	}
}

// Callback handles the redirect back from Google: verifies state, exchanges
// the code, fetches the profile, and starts a session.
func (g *Google) Callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.Configured() {
			http.Error(w, "OAuth not configured", http.StatusServiceUnavailable)
			return
		}

		deniedURL := g.frontendURL + "/?page=signin&error=google_denied"

		if errParam := r.URL.Query().Get("error"); errParam != "" {
			logAuthErr(r, fmt.Sprintf("provider error: %s", errParam))
			http.Redirect(w, r, deniedURL, http.StatusFound)
			return
		}

		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")
		if code == "" || state == "" || !g.stateMatches(r, state) {
			logAuthErr(r, "missing code or state mismatch")
			http.Redirect(w, r, deniedURL, http.StatusFound)
			return
		}

		token, err := g.oauth.Exchange(r.Context(), code)
		if err != nil {
			logAuthErr(r, fmt.Sprintf("code exchange failed: %v", err))
			http.Redirect(w, r, deniedURL, http.StatusFound)
			return
		}

		profile, err := g.fetchProfile(r.Context(), token)
		if err != nil {
			logAuthErr(r, fmt.Sprintf("profile fetch failed: %v", err))
			http.Redirect(w, r, deniedURL, http.StatusFound)
			return
		}

		if _, err := g.sessions.Create(w, profile.user()); err != nil {
			logAuthErr(r, fmt.Sprintf("couldn't create session: %v", err))
			http.Redirect(w, r, deniedURL, http.StatusFound)
			return
		}

		// same-origin callback page so the fresh session cookie is present
		http.Redirect(w, r, g.frontendURL+"/auth/callback", http.StatusFound)
	}
}

func (g *Google) stateMatches(r *http.Request, state string) bool {
	cookie, err := r.Cookie(stateCookie)
	if err != nil {
		return false
	}
	return cookie.Value == state
}

type googleProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func (p *googleProfile) user() session.User {
	return session.User{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Avatar:   p.Picture,
		Provider: "google",
	}
}

func (g *Google) fetchProfile(
	ctx context.Context,
	token *oauth2.Token,
) (
	*googleProfile,
	error,
) {
	client := g.oauth.Client(ctx, token)
	resp, err := client.Get(g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	profile := &googleProfile{}
	if err := json.NewDecoder(resp.Body).Decode(profile); err != nil {
		return nil, fmt.Errorf("couldn't parse userinfo: %v", err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("userinfo missing subject id")
	}
	return profile, nil
}

func generateState() (string, error) {
	randomBytes := make([]byte, 24)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random state bytes: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(randomBytes), nil
}
