// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package importer pulls content out of the legacy MySQL site database and
// loads it into the local store. The legacy schema mirrors the current one
// table for table but allows NULLs in most text columns.
package importer

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Reader reads data from the legacy MySQL database.
type Reader struct {
	db     *sql.DB
	prefix string
}

// NewReader opens a connection to the legacy database and verifies it.
func NewReader(dsn, tablePrefix string) (*Reader, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening legacy database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to legacy database: %w", err)
	}

	return &Reader{db: db, prefix: tablePrefix}, nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// BuildDSN builds a MySQL DSN from connection parameters. parseTime is
// always on so DATETIME columns scan into time.Time.
func BuildDSN(user, password, host, port, database string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		user, password, host, port, database)
}

// LegacySection is a row of the legacy content_sections table.
type LegacySection struct {
	Key      string
	Title    sql.NullString
	Subtitle sql.NullString
	Body     sql.NullString
	ImageURL sql.NullString
	CtaLabel sql.NullString
	CtaURL   sql.NullString
	IsActive bool
}

// GetSections retrieves every content section.
func (r *Reader) GetSections() ([]LegacySection, error) {
	query := fmt.Sprintf(
		"SELECT `key`, title, subtitle, body, image_url, cta_label, cta_url, is_active FROM %scontent_sections ORDER BY `key`",
		r.prefix)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var sections []LegacySection
	for rows.Next() {
		var s LegacySection
		if err := rows.Scan(&s.Key, &s.Title, &s.Subtitle, &s.Body,
			&s.ImageURL, &s.CtaLabel, &s.CtaURL, &s.IsActive); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// LegacyItem is a row of one of the ordered-list tables.
type LegacyItem struct {
	Title       string
	Description sql.NullString
	Value       sql.NullString
	Icon        sql.NullString
	LinkURL     sql.NullString
	ImageURL    sql.NullString
	Position    int64
	IsActive    bool
}

// GetItems retrieves every row of one ordered-list table. The table name is
// appended to the configured prefix; callers pass names from the kind
// registry only.
func (r *Reader) GetItems(table string) ([]LegacyItem, error) {
	query := fmt.Sprintf(
		"SELECT title, description, value, icon, link_url, image_url, position, is_active FROM %s%s ORDER BY position, id",
		r.prefix, table)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var items []LegacyItem
	for rows.Next() {
		var it LegacyItem
		if err := rows.Scan(&it.Title, &it.Description, &it.Value, &it.Icon,
			&it.LinkURL, &it.ImageURL, &it.Position, &it.IsActive); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// LegacySlide is a row of the legacy hero_slides table.
type LegacySlide struct {
	Title    string
	Subtitle sql.NullString
	ImageURL sql.NullString
	CtaLabel sql.NullString
	CtaURL   sql.NullString
	Position int64
	IsActive bool
}

// GetHeroSlides retrieves every hero slide in carousel order.
func (r *Reader) GetHeroSlides() ([]LegacySlide, error) {
	query := fmt.Sprintf(
		"SELECT title, subtitle, image_url, cta_label, cta_url, position, is_active FROM %shero_slides ORDER BY position, id",
		r.prefix)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying hero slides: %w", err)
	}
	defer rows.Close()

	var slides []LegacySlide
	for rows.Next() {
		var s LegacySlide
		if err := rows.Scan(&s.Title, &s.Subtitle, &s.ImageURL,
			&s.CtaLabel, &s.CtaURL, &s.Position, &s.IsActive); err != nil {
			return nil, fmt.Errorf("scanning hero slide: %w", err)
		}
		slides = append(slides, s)
	}
	return slides, rows.Err()
}

// LegacyMapPoint is a row of the legacy map_points table.
type LegacyMapPoint struct {
	Title       string
	Description sql.NullString
	Latitude    sql.NullFloat64
	Longitude   sql.NullFloat64
	Icon        sql.NullString
	Position    int64
	IsActive    bool
}

// GetMapPoints retrieves every map point.
func (r *Reader) GetMapPoints() ([]LegacyMapPoint, error) {
	query := fmt.Sprintf(
		"SELECT title, description, latitude, longitude, icon, position, is_active FROM %smap_points ORDER BY position, id",
		r.prefix)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying map points: %w", err)
	}
	defer rows.Close()

	var points []LegacyMapPoint
	for rows.Next() {
		var p LegacyMapPoint
		if err := rows.Scan(&p.Title, &p.Description, &p.Latitude,
			&p.Longitude, &p.Icon, &p.Position, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scanning map point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetContactInfo retrieves the contact-info key/value rows.
func (r *Reader) GetContactInfo() (map[string]string, error) {
	query := fmt.Sprintf("SELECT `key`, value FROM %scontact_info", r.prefix)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying contact info: %w", err)
	}
	defer rows.Close()

	info := make(map[string]string)
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning contact info: %w", err)
		}
		info[key] = value.String
	}
	return info, rows.Err()
}

// LegacyMessage is a row of the legacy contact_messages table.
type LegacyMessage struct {
	Name      string
	Email     string
	Phone     sql.NullString
	Company   sql.NullString
	Subject   sql.NullString
	Message   string
	UserAgent sql.NullString
	IPAddress sql.NullString
	IsRead    bool
	CreatedAt time.Time
}

// GetContactMessages retrieves every stored contact-form submission.
func (r *Reader) GetContactMessages() ([]LegacyMessage, error) {
	query := fmt.Sprintf(
		"SELECT name, email, phone, company, subject, message, user_agent, ip_address, is_read, created_at FROM %scontact_messages ORDER BY created_at",
		r.prefix)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying contact messages: %w", err)
	}
	defer rows.Close()

	var messages []LegacyMessage
	for rows.Next() {
		var m LegacyMessage
		if err := rows.Scan(&m.Name, &m.Email, &m.Phone, &m.Company, &m.Subject,
			&m.Message, &m.UserAgent, &m.IPAddress, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// GetSectionCount returns the number of content sections, used as a cheap
// connection and schema check.
func (r *Reader) GetSectionCount() (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %scontent_sections", r.prefix)
	if err := r.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting sections: %w", err)
	}
	return count, nil
}
