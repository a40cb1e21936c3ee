// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const sectionColumns = "id, key, title, subtitle, body, image_url, cta_label, cta_url, is_active, created_at, updated_at"

func scanSection(row interface{ Scan(...any) error }) (Section, error) {
	var s Section
	err := row.Scan(&s.ID, &s.Key, &s.Title, &s.Subtitle, &s.Body, &s.ImageURL,
		&s.CtaLabel, &s.CtaURL, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// UpsertSectionParams holds the fields for UpsertSection.
type UpsertSectionParams struct {
	Key      string
	Title    string
	Subtitle string
	Body     string
	ImageURL string
	CtaLabel string
	CtaURL   string
	IsActive bool
	Now      time.Time
}

// UpsertSection inserts a content section or, when the key already exists,
// replaces the existing row's content columns. created_at is preserved on
// update.
func (q *Queries) UpsertSection(ctx context.Context, arg UpsertSectionParams) (Section, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO content_sections (key, title, subtitle, body, image_url, cta_label, cta_url, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		     title = excluded.title,
		     subtitle = excluded.subtitle,
		     body = excluded.body,
		     image_url = excluded.image_url,
		     cta_label = excluded.cta_label,
		     cta_url = excluded.cta_url,
		     is_active = excluded.is_active,
		     updated_at = excluded.updated_at
		 RETURNING `+sectionColumns,
		arg.Key, arg.Title, arg.Subtitle, arg.Body, arg.ImageURL,
		arg.CtaLabel, arg.CtaURL, arg.IsActive, arg.Now, arg.Now)
	return scanSection(row)
}

// GetSectionByKey returns the section with the given key regardless of its
// active flag.
func (q *Queries) GetSectionByKey(ctx context.Context, key string) (Section, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM content_sections WHERE key = ?`, key)
	return scanSection(row)
}

// GetActiveSectionByKey returns the section with the given key only when it
// is active.
func (q *Queries) GetActiveSectionByKey(ctx context.Context, key string) (Section, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM content_sections WHERE key = ? AND is_active = 1`, key)
	return scanSection(row)
}

// ListSections returns every section ordered by key.
func (q *Queries) ListSections(ctx context.Context) ([]Section, error) {
	return q.querySections(ctx, `SELECT `+sectionColumns+` FROM content_sections ORDER BY key`)
}

// ListActiveSections returns the active sections ordered by key.
func (q *Queries) ListActiveSections(ctx context.Context) ([]Section, error) {
	return q.querySections(ctx, `SELECT `+sectionColumns+` FROM content_sections WHERE is_active = 1 ORDER BY key`)
}

func (q *Queries) querySections(ctx context.Context, query string) ([]Section, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var sections []Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// SectionExists reports whether a section with the given key exists.
func (q *Queries) SectionExists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content_sections WHERE key = ?`, key).Scan(&count)
	return count > 0, err
}

// DeleteSection hard-deletes the section with the given key.
func (q *Queries) DeleteSection(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM content_sections WHERE key = ?`, key)
	return err
}
