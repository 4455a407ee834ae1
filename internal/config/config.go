// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Upload backend selectors.
const (
	UploadBackendDisk = "disk"
	UploadBackendS3   = "s3"
)

// Config holds every runtime knob for the backend.
type Config struct {
	Port        int    `env:"PORT" envDefault:"3080"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// FrontendURL is the public base URL used for OAuth callbacks and the
	// offer redirects. When unset it falls back to the Railway-provided
	// URL, then to a sensible default per environment.
	FrontendURL         string `env:"FRONTEND_URL"`
	RailwayStaticURL    string `env:"RAILWAY_STATIC_URL"`
	RailwayPublicDomain string `env:"RAILWAY_PUBLIC_DOMAIN"`

	SessionSecret   string        `env:"SESSION_SECRET" envDefault:"klingmotionai-dev-secret"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"24h"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	DBPath string `env:"DB_PATH" envDefault:"klingmotionai.db"`

	OfferTokenTTL      time.Duration `env:"OFFER_TOKEN_TTL" envDefault:"15m"`
	OfferSweepInterval time.Duration `env:"OFFER_SWEEP_INTERVAL" envDefault:"0"`

	FrontendDir string `env:"FRONTEND_DIR" envDefault:"."`

	UploadBackend  string `env:"UPLOAD_BACKEND" envDefault:"disk"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %v", err)
	}

	if cfg.FrontendURL == "" {
		cfg.FrontendURL = cfg.resolveFrontendURL()
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasGoogleAuth reports whether the OAuth client is configured. Without it
// the sign-in routes answer 503, matching the original deployment.
func (c *Config) HasGoogleAuth() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func (c *Config) resolveFrontendURL() string {
	if c.RailwayStaticURL != "" {
		return c.RailwayStaticURL
	}
	if c.RailwayPublicDomain != "" {
		return "https://" + c.RailwayPublicDomain
	}
	if c.IsProduction() {
		return "https://klingmotionai.com"
	}
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
