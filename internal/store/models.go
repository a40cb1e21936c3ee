// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// User is an administrator account row.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// Section is a singleton content block identified by a unique key.
type Section struct {
	ID        int64
	Key       string
	Title     string
	Subtitle  string
	Body      string
	ImageURL  string
	CtaLabel  string
	CtaURL    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HeroSlide is one slide of the landing-page hero carousel.
type HeroSlide struct {
	ID        int64
	Title     string
	Subtitle  string
	ImageURL  string
	CtaLabel  string
	CtaURL    string
	Position  int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item is one row of an ordered-list content entity. Every list table
// shares this shape; the Kind registry in the model package decides which
// table a given Item lives in.
type Item struct {
	ID          int64
	Title       string
	Description string
	Value       string
	Icon        string
	LinkURL     string
	ImageURL    string
	Position    int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MapPoint is a location marker with coordinates.
type MapPoint struct {
	ID          int64
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Icon        string
	Position    int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactInfoEntry is one key/value pair of the contact-info table.
type ContactInfoEntry struct {
	ID        int64
	Key       string
	Value     string
	UpdatedAt time.Time
}

// ContactMessage is a public contact-form submission.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Company   string
	Subject   string
	Message   string
	UserAgent string
	IPAddress string
	IsRead    bool
	CreatedAt time.Time
}

// AuditEvent is one row of the audit log fed by the logging handler and
// by explicit admin-action records.
type AuditEvent struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}
