// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/showcase-go/internal/auth"
	"github.com/olegiv/showcase-go/internal/model"
)

// AdminSeed describes the administrator account created on first run. An
// empty Password means a random one is generated and logged once.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// Seed populates an empty database with the administrator account and the
// default marketing content. Every step is insert-if-absent, so running
// Seed repeatedly leaves existing rows untouched. All steps run in one
// transaction; a failure leaves the database as it was.
func Seed(ctx context.Context, db *sql.DB, log *slog.Logger, admin AdminSeed) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := New(db).WithTx(tx)
	now := time.Now().UTC()

	if err := seedAdmin(ctx, q, log, admin, now); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}
	if err := seedSections(ctx, q, now); err != nil {
		return fmt.Errorf("seeding sections: %w", err)
	}
	if err := seedHeroSlides(ctx, q, now); err != nil {
		return fmt.Errorf("seeding hero slides: %w", err)
	}
	if err := seedItems(ctx, q, now); err != nil {
		return fmt.Errorf("seeding items: %w", err)
	}
	if err := seedMapPoints(ctx, q, now); err != nil {
		return fmt.Errorf("seeding map points: %w", err)
	}
	if err := seedContactInfo(ctx, q, now); err != nil {
		return fmt.Errorf("seeding contact info: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}

func seedAdmin(ctx context.Context, q *Queries, log *slog.Logger, admin AdminSeed, now time.Time) error {
	count, err := q.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := admin.Password
	generated := false
	if password == "" {
		password, err = randomPassword()
		if err != nil {
			return err
		}
		generated = true
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := q.CreateUser(ctx, CreateUserParams{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	if generated {
		// Logged exactly once, at account creation. Not stored anywhere
		// in plaintext.
		log.Warn("generated admin password, change it after first login",
			"username", user.Username, "password", password)
	} else {
		log.Info("created admin account", "username", user.Username)
	}
	return nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func seedSections(ctx context.Context, q *Queries, now time.Time) error {
	defaults := []UpsertSectionParams{
		{
			Key:      "hero",
			Title:    "Build Something Great",
			Subtitle: "Software that grows with your business",
			CtaLabel: "Get Started",
			CtaURL:   "/contact",
		},
		{
			Key:      "about",
			Title:    "About Us",
			Body:     "We are a team of engineers who care about the craft.",
		},
		{
			Key:      "services",
			Title:    "What We Do",
			Subtitle: "From idea to production",
		},
		{
			Key:      "contact",
			Title:    "Get in Touch",
			Subtitle: "We usually reply within one business day",
		},
	}

	for _, s := range defaults {
		exists, err := q.SectionExists(ctx, s.Key)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		s.IsActive = true
		s.Now = now
		if _, err := q.UpsertSection(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func seedHeroSlides(ctx context.Context, q *Queries, now time.Time) error {
	count, err := q.CountHeroSlides(ctx)
	if err != nil || count > 0 {
		return err
	}

	slides := []CreateHeroSlideParams{
		{Title: "Welcome", Subtitle: "Your partner in digital products", CtaLabel: "Learn More", CtaURL: "/about", Position: 1},
		{Title: "Our Services", Subtitle: "Design, build, operate", CtaLabel: "See Services", CtaURL: "/services", Position: 2},
	}
	for _, s := range slides {
		s.IsActive = true
		s.Now = now
		if _, err := q.CreateHeroSlide(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

var seedItemDefaults = map[string][]CreateItemParams{
	model.KindHeroFeature.Table: {
		{Title: "Fast Delivery", Description: "Ship in weeks, not months", Position: 1},
		{Title: "Proven Stack", Description: "Boring technology, exciting results", Position: 2},
		{Title: "Transparent Pricing", Description: "No surprises on the invoice", Position: 3},
	},
	model.KindAboutFeature.Table: {
		{Title: "Experienced Team", Description: "Senior engineers on every project", Position: 1},
		{Title: "Long-term Support", Description: "We stay after launch", Position: 2},
	},
	model.KindAboutStat.Table: {
		{Title: "Projects Delivered", Value: "120+", Position: 1},
		{Title: "Years in Business", Value: "10", Position: 2},
		{Title: "Team Members", Value: "25", Position: 3},
	},
	model.KindService.Table: {
		{Title: "Web Development", Description: "Modern web applications end to end", Position: 1},
		{Title: "Mobile Apps", Description: "Native and cross-platform", Position: 2},
		{Title: "Consulting", Description: "Architecture and process reviews", Position: 3},
	},
	model.KindStatistic.Table: {
		{Title: "Happy Clients", Value: "98%", Position: 1},
		{Title: "Uptime", Value: "99.9%", Position: 2},
	},
	model.KindFooterLink.Table: {
		{Title: "About", LinkURL: "/about", Position: 1},
		{Title: "Services", LinkURL: "/services", Position: 2},
		{Title: "Contact", LinkURL: "/contact", Position: 3},
	},
}

func seedItems(ctx context.Context, q *Queries, now time.Time) error {
	for _, kind := range model.Kinds {
		count, err := q.CountItems(ctx, kind.Table)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		for _, it := range seedItemDefaults[kind.Table] {
			if it.Icon == "" {
				it.Icon = kind.DefaultIcon
			}
			it.IsActive = true
			it.Now = now
			if _, err := q.CreateItem(ctx, kind.Table, it); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedMapPoints(ctx context.Context, q *Queries, now time.Time) error {
	count, err := q.CountMapPoints(ctx)
	if err != nil || count > 0 {
		return err
	}
	_, err = q.CreateMapPoint(ctx, CreateMapPointParams{
		Title:       "Head Office",
		Description: "Main office and meeting space",
		Icon:        "building",
		Position:    1,
		IsActive:    true,
		Now:         now,
	})
	return err
}

func seedContactInfo(ctx context.Context, q *Queries, now time.Time) error {
	for _, key := range model.ContactInfoKeys {
		_, err := q.GetContactInfo(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if _, err := q.UpsertContactInfo(ctx, key, "", now); err != nil {
			return err
		}
	}
	return nil
}
