// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain types shared across the application:
// ordered-list entity descriptors with their field defaults, contact
// submission validation, and media constants.
package model

// DefaultIcon is the icon glyph substituted when a list item is created
// without one.
const DefaultIcon = "star"

// ItemKind describes one ordered-list content entity. All list entities
// share the same row shape and CRUD contract; the descriptor carries the
// per-entity table binding and defaults so the substitution of omitted
// fields happens in exactly one place.
type ItemKind struct {
	// Name is the singular entity name used in error messages ("service").
	Name string
	// Route is the URL path segment the entity is mounted under.
	Route string
	// Table is the backing table name. Only values from the Kinds
	// registry ever reach SQL.
	Table string
	// DefaultIcon is substituted when a create request omits the icon.
	DefaultIcon string
}

// Ordered-list entity registry. hero_features, about_features and
// about_stats are near-duplicates inherited from the product; they stay
// distinct entities until product says otherwise.
var (
	KindHeroFeature  = ItemKind{Name: "hero feature", Route: "hero-features", Table: "hero_features", DefaultIcon: DefaultIcon}
	KindAboutFeature = ItemKind{Name: "about feature", Route: "about-features", Table: "about_features", DefaultIcon: DefaultIcon}
	KindAboutStat    = ItemKind{Name: "about stat", Route: "about-stats", Table: "about_stats", DefaultIcon: DefaultIcon}
	KindService      = ItemKind{Name: "service", Route: "services", Table: "services", DefaultIcon: DefaultIcon}
	KindStatistic    = ItemKind{Name: "statistic", Route: "statistics", Table: "statistics", DefaultIcon: DefaultIcon}
	KindFooterLink   = ItemKind{Name: "footer link", Route: "footer-links", Table: "footer_links", DefaultIcon: ""}
)

// Kinds lists every registered ordered-list entity.
var Kinds = []ItemKind{
	KindHeroFeature,
	KindAboutFeature,
	KindAboutStat,
	KindService,
	KindStatistic,
	KindFooterLink,
}

// KnownTable reports whether table is a registered list-item table.
func KnownTable(table string) bool {
	for _, k := range Kinds {
		if k.Table == table {
			return true
		}
	}
	return false
}
