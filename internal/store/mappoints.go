// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const mapPointColumns = "id, title, description, latitude, longitude, icon, position, is_active, created_at, updated_at"

func scanMapPoint(row interface{ Scan(...any) error }) (MapPoint, error) {
	var p MapPoint
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Latitude, &p.Longitude,
		&p.Icon, &p.Position, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListMapPoints returns every map point ordered by position, then id.
func (q *Queries) ListMapPoints(ctx context.Context) ([]MapPoint, error) {
	return q.queryMapPoints(ctx, `SELECT `+mapPointColumns+` FROM map_points ORDER BY position, id`)
}

// ListActiveMapPoints returns the active map points ordered by position,
// then id.
func (q *Queries) ListActiveMapPoints(ctx context.Context) ([]MapPoint, error) {
	return q.queryMapPoints(ctx, `SELECT `+mapPointColumns+` FROM map_points WHERE is_active = 1 ORDER BY position, id`)
}

// ListMapPointsWithoutCoordinates returns the points whose coordinates are
// still at the zero default.
func (q *Queries) ListMapPointsWithoutCoordinates(ctx context.Context) ([]MapPoint, error) {
	return q.queryMapPoints(ctx,
		`SELECT `+mapPointColumns+` FROM map_points WHERE latitude = 0 AND longitude = 0 ORDER BY position, id`)
}

func (q *Queries) queryMapPoints(ctx context.Context, query string) ([]MapPoint, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var points []MapPoint
	for rows.Next() {
		p, err := scanMapPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetMapPoint returns a single map point by id.
func (q *Queries) GetMapPoint(ctx context.Context, id int64) (MapPoint, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+mapPointColumns+` FROM map_points WHERE id = ?`, id)
	return scanMapPoint(row)
}

// CreateMapPointParams holds the fields for CreateMapPoint.
type CreateMapPointParams struct {
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Icon        string
	Position    int64
	IsActive    bool
	Now         time.Time
}

// CreateMapPoint inserts a map point and returns the created row.
func (q *Queries) CreateMapPoint(ctx context.Context, arg CreateMapPointParams) (MapPoint, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO map_points (title, description, latitude, longitude, icon, position, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+mapPointColumns,
		arg.Title, arg.Description, arg.Latitude, arg.Longitude, arg.Icon,
		arg.Position, arg.IsActive, arg.Now, arg.Now)
	return scanMapPoint(row)
}

// UpdateMapPointParams holds the fields for UpdateMapPoint.
type UpdateMapPointParams struct {
	ID          int64
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Icon        string
	Position    int64
	IsActive    bool
	Now         time.Time
}

// UpdateMapPoint rewrites every content column of a map point and returns
// the updated row. Returns sql.ErrNoRows when no point matches the id.
func (q *Queries) UpdateMapPoint(ctx context.Context, arg UpdateMapPointParams) (MapPoint, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE map_points SET title = ?, description = ?, latitude = ?, longitude = ?,
		 icon = ?, position = ?, is_active = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+mapPointColumns,
		arg.Title, arg.Description, arg.Latitude, arg.Longitude, arg.Icon,
		arg.Position, arg.IsActive, arg.Now, arg.ID)
	return scanMapPoint(row)
}

// UpdateMapPointCoordinates sets only the coordinates of a map point and
// returns the updated row. Returns sql.ErrNoRows when no point matches the
// id.
func (q *Queries) UpdateMapPointCoordinates(ctx context.Context, id int64, lat, lng float64, now time.Time) (MapPoint, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE map_points SET latitude = ?, longitude = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+mapPointColumns,
		lat, lng, now, id)
	return scanMapPoint(row)
}

// DeleteMapPoint hard-deletes a map point. Deleting a missing point is not
// an error.
func (q *Queries) DeleteMapPoint(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM map_points WHERE id = ?`, id)
	return err
}

// CountMapPoints returns the number of map points.
func (q *Queries) CountMapPoints(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM map_points`).Scan(&count)
	return count, err
}
