package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/klingmotionai-bot/klingmotionai/internal/api"
	"github.com/klingmotionai-bot/klingmotionai/internal/auth"
	"github.com/klingmotionai-bot/klingmotionai/internal/config"
	"github.com/klingmotionai-bot/klingmotionai/internal/database"
	"github.com/klingmotionai-bot/klingmotionai/internal/offer"
	"github.com/klingmotionai-bot/klingmotionai/internal/resources"
	"github.com/klingmotionai-bot/klingmotionai/internal/routing"
	"github.com/klingmotionai-bot/klingmotionai/internal/session"
	"github.com/klingmotionai-bot/klingmotionai/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v\n", err)
	}
	log.Printf("starting on port %d, frontend %s\n", cfg.Port, cfg.FrontendURL)

	if !cfg.HasGoogleAuth() {
		log.Println("WARNING: missing GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET; OAuth will be disabled")
	}

	db := database.NewSQLiteStore(cfg.DBPath, cfg.SessionSecret)
	defer db.Close()

	sessions := session.NewManager(db.SessionStore(), cfg.SessionLifetime, cfg.IsProduction())
	google := auth.NewGoogle(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.FrontendURL,
		sessions,
		cfg.IsProduction(),
	)

	offers := offer.New(offer.NewMemoryStore(), cfg.OfferTokenTTL)
	if cfg.OfferSweepInterval > 0 {
		go offers.RunSweeper(context.Background(), cfg.OfferSweepInterval)
	}

	uploads, uploadDir, err := buildUploadStore(cfg)
	if err != nil {
		log.Fatalf("failed to init upload storage: %v\n", err)
	}

	pages := resources.NewPages(cfg.FrontendDir)

	r := routing.BuildRouter(routing.Options{
		API:         api.New(offers, sessions, uploads, cfg.FrontendURL, cfg.MaxUploadBytes),
		Auth:        google,
		Sessions:    sessions,
		Pages:       pages,
		FrontendURL: cfg.FrontendURL,
		UploadDir:   uploadDir,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Fatal(http.ListenAndServe(addr, r))
}

// buildUploadStore selects the upload backend. The disk URL is only
// returned for the disk backend, where the router must also serve the
// files back.
func buildUploadStore(cfg *config.Config) (upload.Store, string, error) {
	switch cfg.UploadBackend {
	case config.UploadBackendS3:
		store, err := upload.NewS3Store(context.Background(), upload.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		return store, "", err
	case config.UploadBackendDisk:
		store, err := upload.NewDiskStore(cfg.UploadDir, cfg.FrontendURL)
		return store, cfg.UploadDir, err
	default:
		return nil, "", fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}
