// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/showcase-go/internal/store"
)

// HeroSlideResponse is the API shape of a hero carousel slide.
type HeroSlideResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	ImageURL  string    `json:"image_url"`
	CtaLabel  string    `json:"cta_label"`
	CtaURL    string    `json:"cta_url"`
	Position  int64     `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handler) toSlideResponse(s store.HeroSlide) HeroSlideResponse {
	resp := HeroSlideResponse{
		ID:        s.ID,
		Title:     s.Title,
		Subtitle:  s.Subtitle,
		ImageURL:  s.ImageURL,
		CtaLabel:  s.CtaLabel,
		CtaURL:    s.CtaURL,
		Position:  s.Position,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if h.media != nil {
		resp.ImageURL = h.media.FilterImageURL(resp.ImageURL)
	}
	return resp
}

// HeroSlideRequest is the create and update payload for a slide.
type HeroSlideRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	CtaLabel string `json:"cta_label"`
	CtaURL   string `json:"cta_url"`
	Position *int64 `json:"position"`
	IsActive *bool  `json:"is_active"`
}

func (req *HeroSlideRequest) validate() map[string]string {
	if strings.TrimSpace(req.Title) == "" {
		return map[string]string{"title": "Title is required"}
	}
	return nil
}

// ListPublicHeroSlides returns the active slides in carousel order.
func (h *Handler) ListPublicHeroSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.queries.ListActiveHeroSlides(r.Context())
	if err != nil {
		slog.Error("failed to list hero slides", "error", err)
		WriteInternalError(w, "Failed to list hero slides")
		return
	}

	resp := make([]HeroSlideResponse, 0, len(slides))
	for _, s := range slides {
		resp = append(resp, h.toSlideResponse(s))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// ListAdminHeroSlides returns every slide.
func (h *Handler) ListAdminHeroSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.queries.ListHeroSlides(r.Context())
	if err != nil {
		slog.Error("failed to list hero slides", "error", err)
		WriteInternalError(w, "Failed to list hero slides")
		return
	}

	resp := make([]HeroSlideResponse, 0, len(slides))
	for _, s := range slides {
		resp = append(resp, h.toSlideResponse(s))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetHeroSlide returns one slide by id.
func (h *Handler) GetHeroSlide(w http.ResponseWriter, r *http.Request) {
	slide, ok := requireEntityByID(w, r, "hero slide", func(id int64) (store.HeroSlide, error) {
		return h.queries.GetHeroSlide(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, h.toSlideResponse(slide), nil)
}

// CreateHeroSlide inserts a slide.
func (h *Handler) CreateHeroSlide(w http.ResponseWriter, r *http.Request) {
	var req HeroSlideRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	position := int64(0)
	if req.Position != nil {
		position = *req.Position
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	slide, err := h.queries.CreateHeroSlide(r.Context(), store.CreateHeroSlideParams{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		CtaLabel: req.CtaLabel,
		CtaURL:   req.CtaURL,
		Position: position,
		IsActive: isActive,
		Now:      time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to create hero slide", "error", err)
		WriteInternalError(w, "Failed to create hero slide")
		return
	}

	WriteCreated(w, h.toSlideResponse(slide))
}

// UpdateHeroSlide replaces a slide. A missing id yields 404.
func (h *Handler) UpdateHeroSlide(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid hero slide ID", nil)
		return
	}

	var req HeroSlideRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	position := int64(0)
	if req.Position != nil {
		position = *req.Position
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	slide, err := h.queries.UpdateHeroSlide(r.Context(), store.UpdateHeroSlideParams{
		ID:       id,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		CtaLabel: req.CtaLabel,
		CtaURL:   req.CtaURL,
		Position: position,
		IsActive: isActive,
		Now:      time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Hero slide not found")
		} else {
			slog.Error("failed to update hero slide", "error", err, "id", id)
			WriteInternalError(w, "Failed to update hero slide")
		}
		return
	}

	WriteSuccess(w, h.toSlideResponse(slide), nil)
}

// DeleteHeroSlide removes a slide. Deleting a missing id succeeds.
func (h *Handler) DeleteHeroSlide(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid hero slide ID", nil)
		return
	}

	if err := h.queries.DeleteHeroSlide(r.Context(), id); err != nil {
		slog.Error("failed to delete hero slide", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete hero slide")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// ReorderRequest carries the slide ids in their new display order.
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// ReorderHeroSlides rewrites slide positions to match the submitted id
// order. Positions are assigned 1..n; ids missing from the list keep their
// stored positions.
func (h *Handler) ReorderHeroSlides(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		WriteValidationError(w, map[string]string{"ids": "At least one slide ID is required"})
		return
	}

	now := time.Now().UTC()
	for i, id := range req.IDs {
		if err := h.queries.UpdateHeroSlidePosition(r.Context(), id, int64(i+1), now); err != nil {
			slog.Error("failed to reorder hero slides", "error", err, "id", id)
			WriteInternalError(w, "Failed to reorder hero slides")
			return
		}
	}

	h.ListAdminHeroSlides(w, r)
}
