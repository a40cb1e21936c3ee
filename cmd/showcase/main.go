// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command showcase runs the marketing site backend: a REST API serving the
// public content endpoints and the token-protected admin endpoints.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/showcase-go/internal/auth"
	"github.com/olegiv/showcase-go/internal/config"
	"github.com/olegiv/showcase-go/internal/handler/api"
	"github.com/olegiv/showcase-go/internal/imagehost"
	"github.com/olegiv/showcase-go/internal/logging"
	"github.com/olegiv/showcase-go/internal/middleware"
	"github.com/olegiv/showcase-go/internal/model"
	"github.com/olegiv/showcase-go/internal/service"
	"github.com/olegiv/showcase-go/internal/store"
	"github.com/olegiv/showcase-go/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("showcase %s\n", version.Version)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	setupLogging(cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return err
	}

	// Upgrade logging: WARN and above now also lands in the audit log.
	upgradeLogging(cfg, db)

	if cfg.DoSeed {
		if err := store.Seed(context.Background(), db, slog.Default(), store.AdminSeed{
			Username: cfg.AdminUsername,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		}); err != nil {
			return err
		}
	}

	issuer := auth.NewTokenIssuer(cfg.TokenSecret)

	var media *service.MediaService
	if cfg.MediaEnabled() {
		host := imagehost.New(imagehost.Config{
			CloudName: cfg.MediaCloudName,
			APIKey:    cfg.MediaAPIKey,
			APISecret: cfg.MediaAPISecret,
			Folder:    cfg.MediaFolder,
		})
		media = service.NewMediaService(host, cfg.MaxUploadBytes, slog.Default())
	} else {
		slog.Warn("image host not configured, media endpoints disabled")
	}

	r := buildRouter(cfg, db, issuer, media)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// setupLogging installs the base text handler at the configured level.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// upgradeLogging wraps the default handler so WARN and above is mirrored
// into the audit_events table. Only possible once the database is migrated.
func upgradeLogging(cfg *config.Config, db *sql.DB) {
	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	inner := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(logging.NewAuditHandler(inner, db)))
}

func buildRouter(cfg *config.Config, db *sql.DB, issuer *auth.TokenIssuer, media *service.MediaService) chi.Router {
	h := api.NewHandler(db, issuer, media)
	queries := store.New(db)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	publicLimiter := middleware.NewGlobalRateLimiter(20, 40)
	contactLimiter := middleware.NewGlobalRateLimiter(0.2, 3)
	loginLimiter := middleware.NewGlobalRateLimiter(0.5, 5)

	r.Route("/api/v1", func(r chi.Router) {
		// Public, unauthenticated surface
		r.Group(func(r chi.Router) {
			r.Use(publicLimiter.Middleware())

			r.Get("/status", h.Status)
			r.Get("/content", h.ListPublicSections)
			r.Get("/content/{key}", h.GetPublicSection)
			r.Get("/hero-slides", h.ListPublicHeroSlides)
			r.Get("/map-points", h.ListPublicMapPoints)
			r.Get("/contact-info", h.GetContactInfo)

			for _, kind := range model.Kinds {
				r.Get("/"+kind.Route, h.ListPublicItems(kind))
			}
		})

		r.With(loginLimiter.Middleware()).Post("/auth/login", h.Login)
		r.With(contactLimiter.Middleware()).Post("/contact", h.SubmitContactMessage)

		// Admin surface, bearer token required
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(issuer, queries))

			r.Get("/auth/me", h.Me)
			r.Put("/auth/password", h.ChangePassword)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/content", h.ListAdminSections)
				r.Get("/content/{key}", h.GetAdminSection)
				r.Put("/content/{key}", h.UpsertSection)
				r.Delete("/content/{key}", h.DeleteSection)

				r.Get("/hero-slides", h.ListAdminHeroSlides)
				r.Post("/hero-slides", h.CreateHeroSlide)
				r.Post("/hero-slides/reorder", h.ReorderHeroSlides)
				r.Get("/hero-slides/{id}", h.GetHeroSlide)
				r.Put("/hero-slides/{id}", h.UpdateHeroSlide)
				r.Delete("/hero-slides/{id}", h.DeleteHeroSlide)

				for _, kind := range model.Kinds {
					r.Get("/"+kind.Route, h.ListAdminItems(kind))
					r.Post("/"+kind.Route, h.CreateItem(kind))
					r.Get("/"+kind.Route+"/{id}", h.GetItem(kind))
					r.Put("/"+kind.Route+"/{id}", h.UpdateItem(kind))
					r.Delete("/"+kind.Route+"/{id}", h.DeleteItem(kind))
				}

				r.Get("/map-points", h.ListAdminMapPoints)
				r.Post("/map-points", h.CreateMapPoint)
				r.Post("/map-points/fill-coordinates", h.FillMapPointCoordinates)
				r.Get("/map-points/{id}", h.GetMapPoint)
				r.Put("/map-points/{id}", h.UpdateMapPoint)
				r.Patch("/map-points/{id}/coordinates", h.UpdateMapPointCoordinates)
				r.Delete("/map-points/{id}", h.DeleteMapPoint)

				r.Put("/contact-info", h.UpdateContactInfo)

				r.Get("/messages", h.ListContactMessages)
				r.Get("/messages/{id}", h.GetContactMessage)
				r.Post("/messages/{id}/read", h.MarkMessageRead)
				r.Post("/messages/{id}/unread", h.MarkMessageUnread)
				r.Delete("/messages/{id}", h.DeleteContactMessage)

				r.Get("/users", h.ListUsers)
				r.Post("/users", h.CreateUser)
				r.Get("/users/{id}", h.GetUser)
				r.Put("/users/{id}", h.UpdateUser)
				r.Delete("/users/{id}", h.DeleteUser)

				r.Get("/events", h.ListAuditEvents)

				r.Post("/media", h.UploadMedia)
				r.Get("/media", h.ListMedia)
				r.Delete("/media", h.DeleteMedia)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteNotFound(w, "Route not found")
	})

	return r
}
