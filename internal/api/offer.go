package api

import (
	"fmt"
	"net/http"

	"github.com/klingmotionai-bot/klingmotionai/internal/session"
)

type CreateOfferTokenResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CreateOfferToken mints a one-time offer token for the signed-in user.
// The frontend embeds it in the offer network's redirect URL.
func (a *API) CreateOfferToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || sess.User.ID == "" {
			returnJsonStatus(&ErrorResponse{Success: false, Error: "Unauthorized"}, http.StatusUnauthorized, w)
			return
		}

		token, err := a.offers.Issue(sess.User.ID)
		if err != nil {
			logApiErr(r, fmt.Sprintf("couldn't issue offer token: %v", err))
			returnJsonStatus(&ErrorResponse{Success: false, Error: "Internal error"}, http.StatusInternalServerError, w)
			return
		}

		returnJson(&CreateOfferTokenResponse{Token: token}, w)
	}
}

// OfferComplete is the redirect target the offer network is told to hit
// after the user finishes an offer. The redirecting party is untrusted;
// everything it supplies is revalidated here. Every rejection produces the
// same error redirect so callers can't probe which check failed.
func (a *API) OfferComplete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errorURL := a.frontendURL + "/?offer_error=1"

		var requesterID string
		sess, ok := session.FromContext(r.Context())
		if ok {
			requesterID = sess.User.ID
		}

		token := r.URL.Query().Get("token")
		if err := a.offers.Redeem(token, requesterID, a.now()); err != nil {
			logApiErr(r, fmt.Sprintf("offer redemption rejected: %v", err))
			http.Redirect(w, r, errorURL, http.StatusFound)
			return
		}

		if err := a.sessions.SetOfferCompleted(sess.ID); err != nil {
			logApiErr(r, fmt.Sprintf("couldn't save offer flag: %v", err))
			http.Redirect(w, r, errorURL, http.StatusFound)
			return
		}

		http.Redirect(w, r, a.frontendURL+"/?offer_complete=1", http.StatusFound)
	}
}
