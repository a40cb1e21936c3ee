// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath      string `env:"SHOWCASE_DB_PATH" envDefault:"./data/showcase.db"`
	TokenSecret string `env:"SHOWCASE_TOKEN_SECRET,required"`
	ServerHost  string `env:"SHOWCASE_SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"SHOWCASE_SERVER_PORT" envDefault:"8080"`
	Env         string `env:"SHOWCASE_ENV" envDefault:"development"`
	LogLevel    string `env:"SHOWCASE_LOG_LEVEL" envDefault:"info"`

	// CORS configuration for the React frontend
	AllowedOrigins []string `env:"SHOWCASE_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Image hosting provider configuration
	MediaCloudName string `env:"SHOWCASE_MEDIA_CLOUD_NAME"`
	MediaAPIKey    string `env:"SHOWCASE_MEDIA_API_KEY"`
	MediaAPISecret string `env:"SHOWCASE_MEDIA_API_SECRET"`
	MediaFolder    string `env:"SHOWCASE_MEDIA_FOLDER" envDefault:"site-media"`

	// Upload limits
	MaxUploadBytes int64 `env:"SHOWCASE_MAX_UPLOAD_BYTES" envDefault:"10485760"` // 10 MB

	// Seeding configuration
	DoSeed        bool   `env:"SHOWCASE_DO_SEED" envDefault:"true"`
	AdminUsername string `env:"SHOWCASE_ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"SHOWCASE_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"SHOWCASE_ADMIN_PASSWORD"` // empty = generate and log once
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MediaEnabled returns true if the image hosting provider is configured.
func (c Config) MediaEnabled() bool {
	return c.MediaCloudName != "" && c.MediaAPIKey != "" && c.MediaAPISecret != ""
}

// MinTokenSecretLength is the minimum required length for the token signing secret.
const MinTokenSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate token secret length
	if len(cfg.TokenSecret) < MinTokenSecretLength {
		return nil, fmt.Errorf("SHOWCASE_TOKEN_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinTokenSecretLength, len(cfg.TokenSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.TokenSecret == weak {
			return nil, fmt.Errorf("SHOWCASE_TOKEN_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.TokenSecret) {
		slog.Warn("SHOWCASE_TOKEN_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
