// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// UpsertContactInfo sets the value for a contact-info key, inserting the
// row when the key does not exist yet.
func (q *Queries) UpsertContactInfo(ctx context.Context, key, value string, now time.Time) (ContactInfoEntry, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO contact_info (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		 RETURNING id, key, value, updated_at`,
		key, value, now)
	var e ContactInfoEntry
	err := row.Scan(&e.ID, &e.Key, &e.Value, &e.UpdatedAt)
	return e, err
}

// GetContactInfo returns the entry for one contact-info key.
func (q *Queries) GetContactInfo(ctx context.Context, key string) (ContactInfoEntry, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT id, key, value, updated_at FROM contact_info WHERE key = ?`, key)
	var e ContactInfoEntry
	err := row.Scan(&e.ID, &e.Key, &e.Value, &e.UpdatedAt)
	return e, err
}

// ListContactInfo returns every contact-info entry ordered by key.
func (q *Queries) ListContactInfo(ctx context.Context) ([]ContactInfoEntry, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, key, value, updated_at FROM contact_info ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []ContactInfoEntry
	for rows.Next() {
		var e ContactInfoEntry
		if err := rows.Scan(&e.ID, &e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const messageColumns = "id, name, email, phone, company, subject, message, user_agent, ip_address, is_read, created_at"

func scanMessage(row interface{ Scan(...any) error }) (ContactMessage, error) {
	var m ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Company, &m.Subject,
		&m.Message, &m.UserAgent, &m.IPAddress, &m.IsRead, &m.CreatedAt)
	return m, err
}

// CreateContactMessageParams holds the fields for CreateContactMessage.
type CreateContactMessageParams struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Subject   string
	Message   string
	UserAgent string
	IPAddress string
	CreatedAt time.Time
}

// CreateContactMessage stores a contact-form submission.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (ContactMessage, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO contact_messages (name, email, phone, company, subject, message, user_agent, ip_address, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+messageColumns,
		arg.Name, arg.Email, arg.Phone, arg.Company, arg.Subject,
		arg.Message, arg.UserAgent, arg.IPAddress, arg.CreatedAt)
	return scanMessage(row)
}

// GetContactMessage returns a single message by id.
func (q *Queries) GetContactMessage(ctx context.Context, id int64) (ContactMessage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM contact_messages WHERE id = ?`, id)
	return scanMessage(row)
}

// ListContactMessages returns every message, newest first.
func (q *Queries) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM contact_messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var messages []ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// SetContactMessageRead flags a message read or unread. Returns the number
// of rows affected.
func (q *Queries) SetContactMessageRead(ctx context.Context, id int64, read bool) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE contact_messages SET is_read = ? WHERE id = ?`, read, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteContactMessage hard-deletes a message. Deleting a missing message
// is not an error.
func (q *Queries) DeleteContactMessage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	return err
}

// CountContactMessages returns the total number of messages.
func (q *Queries) CountContactMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages`).Scan(&count)
	return count, err
}

// CountUnreadMessages returns the number of unread messages.
func (q *Queries) CountUnreadMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE is_read = 0`).Scan(&count)
	return count, err
}
