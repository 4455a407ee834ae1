// Package routing assembles the HTTP surface of the backend.
package routing

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klingmotionai-bot/klingmotionai/internal/api"
	"github.com/klingmotionai-bot/klingmotionai/internal/auth"
	"github.com/klingmotionai-bot/klingmotionai/internal/resources"
	"github.com/klingmotionai-bot/klingmotionai/internal/session"
)

type Options struct {
	API         *api.API
	Auth        *auth.Google
	Sessions    *session.Manager
	Pages       *resources.Pages
	FrontendURL string
	UploadDir   string
}

func BuildRouter(opts Options) *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware(opts.FrontendURL))
	r.Use(session.Middleware(opts.Sessions))

	r.HandleFunc("/health", opts.API.Health()).Methods("GET")

	// sign-in flow
	r.HandleFunc("/auth/google", opts.Auth.Start()).Methods("GET")
	r.HandleFunc("/auth/google/callback", opts.Auth.Callback()).Methods("GET")
	r.HandleFunc("/auth/me", opts.Auth.Me()).Methods("GET")
	r.HandleFunc("/auth/logout", opts.Auth.Logout()).Methods("GET")

	// offer token flow; the offer network redirects to either completion path
	r.HandleFunc("/api/create-offer-token", opts.API.CreateOfferToken()).Methods("POST")
	r.HandleFunc("/offer-complete", opts.API.OfferComplete()).Methods("GET")
	r.HandleFunc("/api/offer-complete", opts.API.OfferComplete()).Methods("GET")

	// uploads
	r.HandleFunc("/upload", opts.API.UploadInfo()).Methods("GET")
	r.HandleFunc("/upload", opts.API.Upload()).Methods("POST")
	if opts.UploadDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	// frontend, same origin as the API so session cookies work
	if opts.Pages != nil {
		r.HandleFunc("/", opts.Pages.Serve(resources.IndexPage)).Methods("GET")
		r.HandleFunc("/auth/callback", opts.Pages.Serve(resources.AuthCallbackPage)).Methods("GET")
		r.PathPrefix("/").Handler(opts.Pages.Static())
	}

	return r
}
