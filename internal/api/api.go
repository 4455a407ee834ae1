// Package api implements the JSON and redirect endpoints of the backend.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/klingmotionai-bot/klingmotionai/internal/offer"
	"github.com/klingmotionai-bot/klingmotionai/internal/session"
	"github.com/klingmotionai-bot/klingmotionai/internal/upload"
)

// API carries the handler dependencies. now is injectable so tests can
// redeem against a frozen clock.
type API struct {
	offers         *offer.Service
	sessions       *session.Manager
	uploads        upload.Store
	frontendURL    string
	maxUploadBytes int64
	now            func() time.Time
}

func New(
	offers *offer.Service,
	sessions *session.Manager,
	uploads upload.Store,
	frontendURL string,
	maxUploadBytes int64,
) *API {
	return &API{
		offers:         offers,
		sessions:       sessions,
		uploads:        uploads,
		frontendURL:    frontendURL,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

// SetClock overrides the redemption clock. Tests use it to exercise TTL
// boundaries without sleeping.
func (a *API) SetClock(now func() time.Time) {
	a.now = now
}

// Health answers the deployment platform's liveness probe.
func (a *API) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func returnJson(data any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func returnJsonStatus(data any, status int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func logApiErr(r *http.Request, msg string) {
	log.Printf("%s %s: %s\n", r.Method, r.RequestURI, msg)
}
