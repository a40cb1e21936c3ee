// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/showcase-go/internal/model"
)

// The item queries are parameterized by table name. Table names are never
// taken from request input; they must come from the closed kind registry.
const itemColumns = "id, title, description, value, icon, link_url, image_url, position, is_active, created_at, updated_at"

func checkItemTable(table string) error {
	if !model.KnownTable(table) {
		return fmt.Errorf("unknown item table %q", table)
	}
	return nil
}

func scanItem(row interface{ Scan(...any) error }) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Title, &it.Description, &it.Value, &it.Icon,
		&it.LinkURL, &it.ImageURL, &it.Position, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// ListItems returns every row of an item table ordered by position, then id.
func (q *Queries) ListItems(ctx context.Context, table string) ([]Item, error) {
	if err := checkItemTable(table); err != nil {
		return nil, err
	}
	return q.queryItems(ctx,
		fmt.Sprintf(`SELECT %s FROM %s ORDER BY position, id`, itemColumns, table))
}

// ListActiveItems returns the active rows of an item table ordered by
// position, then id.
func (q *Queries) ListActiveItems(ctx context.Context, table string) ([]Item, error) {
	if err := checkItemTable(table); err != nil {
		return nil, err
	}
	return q.queryItems(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE is_active = 1 ORDER BY position, id`, itemColumns, table))
}

func (q *Queries) queryItems(ctx context.Context, query string) ([]Item, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetItem returns a single row of an item table by id.
func (q *Queries) GetItem(ctx context.Context, table string, id int64) (Item, error) {
	if err := checkItemTable(table); err != nil {
		return Item{}, err
	}
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, itemColumns, table), id)
	return scanItem(row)
}

// CreateItemParams holds the fields for CreateItem.
type CreateItemParams struct {
	Title       string
	Description string
	Value       string
	Icon        string
	LinkURL     string
	ImageURL    string
	Position    int64
	IsActive    bool
	Now         time.Time
}

// CreateItem inserts a row into an item table and returns the created row.
func (q *Queries) CreateItem(ctx context.Context, table string, arg CreateItemParams) (Item, error) {
	if err := checkItemTable(table); err != nil {
		return Item{}, err
	}
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (title, description, value, icon, link_url, image_url, position, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING %s`, table, itemColumns),
		arg.Title, arg.Description, arg.Value, arg.Icon, arg.LinkURL,
		arg.ImageURL, arg.Position, arg.IsActive, arg.Now, arg.Now)
	return scanItem(row)
}

// UpdateItemParams holds the fields for UpdateItem.
type UpdateItemParams struct {
	ID          int64
	Title       string
	Description string
	Value       string
	Icon        string
	LinkURL     string
	ImageURL    string
	Position    int64
	IsActive    bool
	Now         time.Time
}

// UpdateItem rewrites every content column of an item row and returns the
// updated row. Returns sql.ErrNoRows when no row matches the id.
func (q *Queries) UpdateItem(ctx context.Context, table string, arg UpdateItemParams) (Item, error) {
	if err := checkItemTable(table); err != nil {
		return Item{}, err
	}
	row := q.db.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE %s SET title = ?, description = ?, value = ?, icon = ?, link_url = ?,
		 image_url = ?, position = ?, is_active = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING %s`, table, itemColumns),
		arg.Title, arg.Description, arg.Value, arg.Icon, arg.LinkURL,
		arg.ImageURL, arg.Position, arg.IsActive, arg.Now, arg.ID)
	return scanItem(row)
}

// DeleteItem hard-deletes a row from an item table. Deleting a missing row
// is not an error.
func (q *Queries) DeleteItem(ctx context.Context, table string, id int64) error {
	if err := checkItemTable(table); err != nil {
		return err
	}
	_, err := q.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	return err
}

// CountItems returns the number of rows in an item table.
func (q *Queries) CountItems(ctx context.Context, table string) (int64, error) {
	if err := checkItemTable(table); err != nil {
		return 0, err
	}
	var count int64
	err := q.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count)
	return count, err
}
