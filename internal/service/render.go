// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips dangerous markup from rendered section bodies.
// UGCPolicy allows the safe formatting tags while dropping <script>, event
// handlers and the like.
var htmlSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts markdown to sanitized HTML. Section bodies are
// authored by admins but the result is embedded into third-party frontends,
// so the output is sanitized regardless. Render failures fall back to the
// sanitized source text.
func RenderMarkdown(source string) string {
	if source == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		slog.Error("failed to render markdown", "error", err)
		return htmlSanitizer.Sanitize(source)
	}
	return htmlSanitizer.Sanitize(buf.String())
}

// SanitizeText strips all HTML from user input, keeping plain text only.
// Contact submissions go through this before they are stored.
func SanitizeText(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}
