// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// Contact-info keys. The contact_info table is flat key/value storage but
// clients see a single object keyed by these field names.
const (
	ContactKeyPhone        = "phone"
	ContactKeyEmail        = "email"
	ContactKeyAddress      = "address"
	ContactKeyWorkingHours = "working_hours"
	ContactKeyMapLat       = "map_lat"
	ContactKeyMapLng       = "map_lng"
)

// ContactInfoKeys lists every recognized contact-info field, in display order.
var ContactInfoKeys = []string{
	ContactKeyPhone,
	ContactKeyEmail,
	ContactKeyAddress,
	ContactKeyWorkingHours,
	ContactKeyMapLat,
	ContactKeyMapLng,
}

// IsContactInfoKey reports whether key is a recognized contact-info field.
func IsContactInfoKey(key string) bool {
	for _, k := range ContactInfoKeys {
		if k == key {
			return true
		}
	}
	return false
}

// ContactSubmission carries a public contact-form submission before it is
// persisted as a message row.
type ContactSubmission struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Subject string
	Message string
}

// Validate returns per-field errors for the submission. Name, email and
// message are required; everything else is optional.
func (s ContactSubmission) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(s.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(s.Email) == "" {
		errs["email"] = "Email is required"
	} else if !looksLikeEmail(s.Email) {
		errs["email"] = "Email is not valid"
	}
	if strings.TrimSpace(s.Message) == "" {
		errs["message"] = "Message is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// looksLikeEmail performs a minimal structural check. Real validation is
// delivery; this only rejects obvious garbage.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t\n")
}
