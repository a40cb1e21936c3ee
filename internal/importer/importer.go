// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package importer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/showcase-go/internal/model"
	"github.com/olegiv/showcase-go/internal/store"
)

// Options controls which legacy entities are imported.
type Options struct {
	// SkipMessages leaves the contact-message inbox out of the import.
	SkipMessages bool
	// DryRun reads the legacy database and reports counts without writing.
	DryRun bool
}

// Result summarizes an import run.
type Result struct {
	Sections    int
	Items       map[string]int
	HeroSlides  int
	MapPoints   int
	ContactInfo int
	Messages    int
	Skipped     int
	Errors      []string
}

// Importer copies legacy content into the local store. Keyed data
// (sections, contact info) is upserted so reruns converge; list data is
// only inserted into empty tables to keep the import idempotent.
type Importer struct {
	reader  *Reader
	queries *store.Queries
	log     *slog.Logger
}

// New creates an importer writing to the given database.
func New(reader *Reader, db *sql.DB, log *slog.Logger) *Importer {
	return &Importer{
		reader:  reader,
		queries: store.New(db),
		log:     log,
	}
}

// Run performs the import and returns per-entity counts.
func (imp *Importer) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{Items: make(map[string]int)}
	now := time.Now().UTC()

	sections, err := imp.reader.GetSections()
	if err != nil {
		return nil, err
	}
	if err := imp.importSections(ctx, sections, opts, now, result); err != nil {
		return nil, err
	}

	slides, err := imp.reader.GetHeroSlides()
	if err != nil {
		return nil, err
	}
	if err := imp.importHeroSlides(ctx, slides, opts, now, result); err != nil {
		return nil, err
	}

	for _, kind := range model.Kinds {
		items, err := imp.reader.GetItems(kind.Table)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", kind.Table, err))
			continue
		}
		if err := imp.importItems(ctx, kind, items, opts, now, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", kind.Table, err))
		}
	}

	points, err := imp.reader.GetMapPoints()
	if err != nil {
		return nil, err
	}
	if err := imp.importMapPoints(ctx, points, opts, now, result); err != nil {
		return nil, err
	}

	info, err := imp.reader.GetContactInfo()
	if err != nil {
		return nil, err
	}
	if err := imp.importContactInfo(ctx, info, opts, now, result); err != nil {
		return nil, err
	}

	if !opts.SkipMessages {
		messages, err := imp.reader.GetContactMessages()
		if err != nil {
			return nil, err
		}
		if err := imp.importMessages(ctx, messages, opts, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (imp *Importer) importSections(ctx context.Context, sections []LegacySection, opts Options, now time.Time, result *Result) error {
	for _, s := range sections {
		if opts.DryRun {
			result.Sections++
			continue
		}
		_, err := imp.queries.UpsertSection(ctx, store.UpsertSectionParams{
			Key:      s.Key,
			Title:    s.Title.String,
			Subtitle: s.Subtitle.String,
			Body:     s.Body.String,
			ImageURL: s.ImageURL.String,
			CtaLabel: s.CtaLabel.String,
			CtaURL:   s.CtaURL.String,
			IsActive: s.IsActive,
			Now:      now,
		})
		if err != nil {
			return fmt.Errorf("importing section %q: %w", s.Key, err)
		}
		result.Sections++
	}

	imp.log.Info("imported sections", "count", result.Sections)
	return nil
}

func (imp *Importer) importHeroSlides(ctx context.Context, slides []LegacySlide, opts Options, now time.Time, result *Result) error {
	count, err := imp.queries.CountHeroSlides(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		imp.log.Info("hero slides already present, skipping", "existing", count)
		result.Skipped++
		return nil
	}

	for _, s := range slides {
		if opts.DryRun {
			result.HeroSlides++
			continue
		}
		_, err := imp.queries.CreateHeroSlide(ctx, store.CreateHeroSlideParams{
			Title:    s.Title,
			Subtitle: s.Subtitle.String,
			ImageURL: s.ImageURL.String,
			CtaLabel: s.CtaLabel.String,
			CtaURL:   s.CtaURL.String,
			Position: s.Position,
			IsActive: s.IsActive,
			Now:      now,
		})
		if err != nil {
			return fmt.Errorf("importing hero slide %q: %w", s.Title, err)
		}
		result.HeroSlides++
	}

	imp.log.Info("imported hero slides", "count", result.HeroSlides)
	return nil
}

func (imp *Importer) importItems(ctx context.Context, kind model.ItemKind, items []LegacyItem, opts Options, now time.Time, result *Result) error {
	count, err := imp.queries.CountItems(ctx, kind.Table)
	if err != nil {
		return err
	}
	if count > 0 {
		imp.log.Info("table already populated, skipping", "table", kind.Table, "existing", count)
		result.Skipped++
		return nil
	}

	for _, it := range items {
		if opts.DryRun {
			result.Items[kind.Table]++
			continue
		}
		icon := it.Icon.String
		if icon == "" {
			icon = kind.DefaultIcon
		}
		_, err := imp.queries.CreateItem(ctx, kind.Table, store.CreateItemParams{
			Title:       it.Title,
			Description: it.Description.String,
			Value:       it.Value.String,
			Icon:        icon,
			LinkURL:     it.LinkURL.String,
			ImageURL:    it.ImageURL.String,
			Position:    it.Position,
			IsActive:    it.IsActive,
			Now:         now,
		})
		if err != nil {
			return fmt.Errorf("importing %s %q: %w", kind.Name, it.Title, err)
		}
		result.Items[kind.Table]++
	}

	imp.log.Info("imported items", "table", kind.Table, "count", result.Items[kind.Table])
	return nil
}

func (imp *Importer) importMapPoints(ctx context.Context, points []LegacyMapPoint, opts Options, now time.Time, result *Result) error {
	count, err := imp.queries.CountMapPoints(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		imp.log.Info("map points already present, skipping", "existing", count)
		result.Skipped++
		return nil
	}

	for _, p := range points {
		if opts.DryRun {
			result.MapPoints++
			continue
		}
		_, err := imp.queries.CreateMapPoint(ctx, store.CreateMapPointParams{
			Title:       p.Title,
			Description: p.Description.String,
			Latitude:    p.Latitude.Float64,
			Longitude:   p.Longitude.Float64,
			Icon:        p.Icon.String,
			Position:    p.Position,
			IsActive:    p.IsActive,
			Now:         now,
		})
		if err != nil {
			return fmt.Errorf("importing map point %q: %w", p.Title, err)
		}
		result.MapPoints++
	}

	imp.log.Info("imported map points", "count", result.MapPoints)
	return nil
}

func (imp *Importer) importContactInfo(ctx context.Context, info map[string]string, opts Options, now time.Time, result *Result) error {
	for key, value := range info {
		// Unrecognized legacy keys are dropped, not carried over.
		if !model.IsContactInfoKey(key) {
			imp.log.Warn("skipping unknown contact-info key", "key", key)
			result.Skipped++
			continue
		}
		if opts.DryRun {
			result.ContactInfo++
			continue
		}
		if _, err := imp.queries.UpsertContactInfo(ctx, key, value, now); err != nil {
			return fmt.Errorf("importing contact info %q: %w", key, err)
		}
		result.ContactInfo++
	}

	imp.log.Info("imported contact info", "count", result.ContactInfo)
	return nil
}

func (imp *Importer) importMessages(ctx context.Context, messages []LegacyMessage, opts Options, result *Result) error {
	count, err := imp.queries.CountContactMessages(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		imp.log.Info("contact messages already present, skipping", "existing", count)
		result.Skipped++
		return nil
	}

	for _, m := range messages {
		if opts.DryRun {
			result.Messages++
			continue
		}
		created, err := imp.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone.String,
			Company:   m.Company.String,
			Subject:   m.Subject.String,
			Message:   m.Message,
			UserAgent: m.UserAgent.String,
			IPAddress: m.IPAddress.String,
			CreatedAt: m.CreatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("importing message from %q: %w", m.Email, err)
		}
		if m.IsRead {
			if _, err := imp.queries.SetContactMessageRead(ctx, created.ID, true); err != nil {
				return fmt.Errorf("marking imported message read: %w", err)
			}
		}
		result.Messages++
	}

	imp.log.Info("imported contact messages", "count", result.Messages)
	return nil
}
