// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/showcase-go/internal/store"
)

const defaultEventLimit = 100

// AuditEventResponse is the API shape of an audit log entry.
type AuditEventResponse struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	UserID    *int64    `json:"user_id,omitempty"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toEventResponse(e store.AuditEvent) AuditEventResponse {
	resp := AuditEventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
	if e.UserID.Valid {
		id := e.UserID.Int64
		resp.UserID = &id
	}
	return resp
}

// ListAuditEvents returns the most recent audit log entries, newest first.
// The limit query parameter caps the page at 1..500.
func (h *Handler) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultEventLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > 500 {
			WriteBadRequest(w, "limit must be between 1 and 500", nil)
			return
		}
		limit = parsed
	}

	events, err := h.queries.ListAuditEvents(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list audit events", "error", err)
		WriteInternalError(w, "Failed to list events")
		return
	}

	resp := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toEventResponse(e))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}
