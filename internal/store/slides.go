// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const slideColumns = "id, title, subtitle, image_url, cta_label, cta_url, position, is_active, created_at, updated_at"

func scanSlide(row interface{ Scan(...any) error }) (HeroSlide, error) {
	var s HeroSlide
	err := row.Scan(&s.ID, &s.Title, &s.Subtitle, &s.ImageURL, &s.CtaLabel,
		&s.CtaURL, &s.Position, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListHeroSlides returns every slide ordered by position, then id.
func (q *Queries) ListHeroSlides(ctx context.Context) ([]HeroSlide, error) {
	return q.querySlides(ctx, `SELECT `+slideColumns+` FROM hero_slides ORDER BY position, id`)
}

// ListActiveHeroSlides returns the active slides ordered by position, then id.
func (q *Queries) ListActiveHeroSlides(ctx context.Context) ([]HeroSlide, error) {
	return q.querySlides(ctx, `SELECT `+slideColumns+` FROM hero_slides WHERE is_active = 1 ORDER BY position, id`)
}

func (q *Queries) querySlides(ctx context.Context, query string) ([]HeroSlide, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var slides []HeroSlide
	for rows.Next() {
		s, err := scanSlide(rows)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, rows.Err()
}

// GetHeroSlide returns a single slide by id.
func (q *Queries) GetHeroSlide(ctx context.Context, id int64) (HeroSlide, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+slideColumns+` FROM hero_slides WHERE id = ?`, id)
	return scanSlide(row)
}

// CreateHeroSlideParams holds the fields for CreateHeroSlide.
type CreateHeroSlideParams struct {
	Title    string
	Subtitle string
	ImageURL string
	CtaLabel string
	CtaURL   string
	Position int64
	IsActive bool
	Now      time.Time
}

// CreateHeroSlide inserts a slide and returns the created row.
func (q *Queries) CreateHeroSlide(ctx context.Context, arg CreateHeroSlideParams) (HeroSlide, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO hero_slides (title, subtitle, image_url, cta_label, cta_url, position, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+slideColumns,
		arg.Title, arg.Subtitle, arg.ImageURL, arg.CtaLabel, arg.CtaURL,
		arg.Position, arg.IsActive, arg.Now, arg.Now)
	return scanSlide(row)
}

// UpdateHeroSlideParams holds the fields for UpdateHeroSlide.
type UpdateHeroSlideParams struct {
	ID       int64
	Title    string
	Subtitle string
	ImageURL string
	CtaLabel string
	CtaURL   string
	Position int64
	IsActive bool
	Now      time.Time
}

// UpdateHeroSlide rewrites every content column of a slide and returns the
// updated row. Returns sql.ErrNoRows when no slide matches the id.
func (q *Queries) UpdateHeroSlide(ctx context.Context, arg UpdateHeroSlideParams) (HeroSlide, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE hero_slides SET title = ?, subtitle = ?, image_url = ?, cta_label = ?,
		 cta_url = ?, position = ?, is_active = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+slideColumns,
		arg.Title, arg.Subtitle, arg.ImageURL, arg.CtaLabel, arg.CtaURL,
		arg.Position, arg.IsActive, arg.Now, arg.ID)
	return scanSlide(row)
}

// UpdateHeroSlidePosition sets the position of one slide.
func (q *Queries) UpdateHeroSlidePosition(ctx context.Context, id, position int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE hero_slides SET position = ?, updated_at = ? WHERE id = ?`,
		position, now, id)
	return err
}

// DeleteHeroSlide hard-deletes a slide. Deleting a missing slide is not an
// error.
func (q *Queries) DeleteHeroSlide(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM hero_slides WHERE id = ?`, id)
	return err
}

// CountHeroSlides returns the number of slides.
func (q *Queries) CountHeroSlides(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hero_slides`).Scan(&count)
	return count, err
}
