package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/klingmotionai-bot/klingmotionai/internal/session"
)

// MeResponse reports the signed-in user, or a null user when there is no
// session.
type MeResponse struct {
	User *MeUser `json:"user"`
}

type MeUser struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Avatar         string `json:"avatar"`
	Provider       string `json:"provider"`
	OfferCompleted bool   `json:"offerCompleted"`
}

// Me reports the current session's user profile and offer state.
func (g *Google) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(MeResponse{User: nil})
			return
		}

		returnJson(&MeResponse{User: &MeUser{
			ID:             sess.User.ID,
			Name:           sess.User.Name,
			Email:          sess.User.Email,
			Avatar:         sess.User.Avatar,
			Provider:       sess.User.Provider,
			OfferCompleted: sess.OfferCompleted,
		}}, w)
	}
}

// Logout destroys the session and sends the browser home.
func (g *Google) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := g.sessions.Destroy(w, r); err != nil {
			logAuthErr(r, err.Error())
		}
		http.Redirect(w, r, g.frontendURL+"/", http.StatusFound)
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

func logAuthErr(r *http.Request, msg string) {
	log.Printf("%s %s: %s\n", r.Method, r.RequestURI, msg)
}
