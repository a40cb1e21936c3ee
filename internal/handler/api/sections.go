// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/showcase-go/internal/service"
	"github.com/olegiv/showcase-go/internal/store"
	"github.com/olegiv/showcase-go/internal/util"
)

// SectionResponse is the API shape of a content section. BodyHTML carries
// the rendered markdown on public reads; admin reads get the raw source
// only.
type SectionResponse struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"body_html,omitempty"`
	ImageURL  string    `json:"image_url"`
	CtaLabel  string    `json:"cta_label"`
	CtaURL    string    `json:"cta_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handler) toSectionResponse(s store.Section, rendered bool) SectionResponse {
	resp := SectionResponse{
		ID:        s.ID,
		Key:       s.Key,
		Title:     s.Title,
		Subtitle:  s.Subtitle,
		Body:      s.Body,
		ImageURL:  s.ImageURL,
		CtaLabel:  s.CtaLabel,
		CtaURL:    s.CtaURL,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if rendered {
		resp.BodyHTML = service.RenderMarkdown(s.Body)
	}
	if h.media != nil {
		resp.ImageURL = h.media.FilterImageURL(resp.ImageURL)
	}
	return resp
}

// ListPublicSections returns the active sections.
func (h *Handler) ListPublicSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.queries.ListActiveSections(r.Context())
	if err != nil {
		slog.Error("failed to list sections", "error", err)
		WriteInternalError(w, "Failed to list content")
		return
	}

	resp := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		resp = append(resp, h.toSectionResponse(s, true))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetPublicSection returns one active section by key.
func (h *Handler) GetPublicSection(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	section, err := h.queries.GetActiveSectionByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Section not found")
		} else {
			WriteInternalError(w, "Failed to retrieve content")
		}
		return
	}
	WriteSuccess(w, h.toSectionResponse(section, true), nil)
}

// ListAdminSections returns every section, active or not, with raw bodies.
func (h *Handler) ListAdminSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.queries.ListSections(r.Context())
	if err != nil {
		slog.Error("failed to list sections", "error", err)
		WriteInternalError(w, "Failed to list content")
		return
	}

	resp := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		resp = append(resp, h.toSectionResponse(s, false))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetAdminSection returns one section by key regardless of active state.
func (h *Handler) GetAdminSection(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	section, err := h.queries.GetSectionByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Section not found")
		} else {
			WriteInternalError(w, "Failed to retrieve content")
		}
		return
	}
	WriteSuccess(w, h.toSectionResponse(section, false), nil)
}

// SectionRequest is the upsert payload for a content section.
type SectionRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
	CtaLabel string `json:"cta_label"`
	CtaURL   string `json:"cta_url"`
	IsActive *bool  `json:"is_active"`
}

// UpsertSection creates or fully replaces the section stored under the URL
// key. The key in the URL is authoritative and is normalized to slug form;
// the body carries content only.
func (h *Handler) UpsertSection(w http.ResponseWriter, r *http.Request) {
	key := util.Slugify(chi.URLParam(r, "key"))
	if !util.IsValidSlug(key) {
		WriteValidationError(w, map[string]string{"key": "Key must contain at least one letter or number"})
		return
	}

	var req SectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	section, err := h.queries.UpsertSection(r.Context(), store.UpsertSectionParams{
		Key:      key,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		CtaLabel: req.CtaLabel,
		CtaURL:   req.CtaURL,
		IsActive: isActive,
		Now:      time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to upsert section", "error", err, "key", key)
		WriteInternalError(w, "Failed to save content")
		return
	}

	WriteSuccess(w, h.toSectionResponse(section, false), nil)
}

// DeleteSection removes a section. Deleting a missing key succeeds.
func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.queries.DeleteSection(r.Context(), key); err != nil {
		slog.Error("failed to delete section", "error", err, "key", key)
		WriteInternalError(w, "Failed to delete content")
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
