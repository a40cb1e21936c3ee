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

	"github.com/olegiv/showcase-go/internal/model"
	"github.com/olegiv/showcase-go/internal/store"
)

// ItemResponse is the API shape of an ordered-list entity row.
type ItemResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Value       string    `json:"value"`
	Icon        string    `json:"icon"`
	LinkURL     string    `json:"link_url"`
	ImageURL    string    `json:"image_url"`
	Position    int64     `json:"position"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *Handler) toItemResponse(it store.Item) ItemResponse {
	resp := ItemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Value:       it.Value,
		Icon:        it.Icon,
		LinkURL:     it.LinkURL,
		ImageURL:    it.ImageURL,
		Position:    it.Position,
		IsActive:    it.IsActive,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	if h.media != nil {
		resp.ImageURL = h.media.FilterImageURL(resp.ImageURL)
	}
	return resp
}

// ItemRequest is the create and update payload for an ordered-list entity.
// Updates are full replacements; omitted fields fall back to defaults, not
// to the stored values.
type ItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Value       string `json:"value"`
	Icon        string `json:"icon"`
	LinkURL     string `json:"link_url"`
	ImageURL    string `json:"image_url"`
	Position    *int64 `json:"position"`
	IsActive    *bool  `json:"is_active"`
}

func (req *ItemRequest) validate() map[string]string {
	if strings.TrimSpace(req.Title) == "" {
		return map[string]string{"title": "Title is required"}
	}
	return nil
}

// applyDefaults fills omitted fields with the entity's defaults.
func (req *ItemRequest) applyDefaults(kind model.ItemKind) (position int64, isActive bool, icon string) {
	position = 0
	if req.Position != nil {
		position = *req.Position
	}
	isActive = true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	icon = req.Icon
	if icon == "" {
		icon = kind.DefaultIcon
	}
	return position, isActive, icon
}

// ListPublicItems returns a handler serving the active rows of one entity,
// ordered by position.
func (h *Handler) ListPublicItems(kind model.ItemKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.queries.ListActiveItems(r.Context(), kind.Table)
		if err != nil {
			slog.Error("failed to list items", "error", err, "entity", kind.Name)
			WriteInternalError(w, "Failed to list "+kind.Name+"s")
			return
		}

		resp := make([]ItemResponse, 0, len(items))
		for _, it := range items {
			resp = append(resp, h.toItemResponse(it))
		}
		WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
	}
}

// ListAdminItems returns a handler serving every row of one entity.
func (h *Handler) ListAdminItems(kind model.ItemKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.queries.ListItems(r.Context(), kind.Table)
		if err != nil {
			slog.Error("failed to list items", "error", err, "entity", kind.Name)
			WriteInternalError(w, "Failed to list "+kind.Name+"s")
			return
		}

		resp := make([]ItemResponse, 0, len(items))
		for _, it := range items {
			resp = append(resp, h.toItemResponse(it))
		}
		WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
	}
}

// GetItem returns a handler serving one row of an entity by id.
func (h *Handler) GetItem(kind model.ItemKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, ok := requireEntityByID(w, r, kind.Name, func(id int64) (store.Item, error) {
			return h.queries.GetItem(r.Context(), kind.Table, id)
		})
		if !ok {
			return
		}
		WriteSuccess(w, h.toItemResponse(item), nil)
	}
}

// CreateItem returns a handler inserting one row of an entity.
func (h *Handler) CreateItem(kind model.ItemKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if fieldErrors := req.validate(); fieldErrors != nil {
			WriteValidationError(w, fieldErrors)
			return
		}

		position, isActive, icon := req.applyDefaults(kind)
		item, err := h.queries.CreateItem(r.Context(), kind.Table, store.CreateItemParams{
			Title:       req.Title,
			Description: req.Description,
			Value:       req.Value,
			Icon:        icon,
			LinkURL:     req.LinkURL,
			ImageURL:    req.ImageURL,
			Position:    position,
			IsActive:    isActive,
			Now:         time.Now().UTC(),
		})
		if err != nil {
			slog.Error("failed to create item", "error", err, "entity", kind.Name)
			WriteInternalError(w, "Failed to create "+kind.Name)
			return
		}

		WriteCreated(w, h.toItemResponse(item))
	}
}

// UpdateItem returns a handler replacing one row of an entity. A missing id
// yields 404.
func (h *Handler) UpdateItem(kind model.ItemKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r)
		if err != nil {
			WriteBadRequest(w, "Invalid "+kind.Name+" ID", nil)
			return
		}

		var req ItemRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if fieldErrors := req.validate(); fieldErrors != nil {
			WriteValidationError(w, fieldErrors)
			return
		}

		position, isActive, icon := req.applyDefaults(kind)
		item, err := h.queries.UpdateItem(r.Context(), kind.Table, store.UpdateItemParams{
			ID:          id,
			Title:       req.Title,
			Description: req.Description,
			Value:       req.Value,
			Icon:        icon,
			LinkURL:     req.LinkURL,
			ImageURL:    req.ImageURL,
			Position:    position,
			IsActive:    isActive,
			Now:         time.Now().UTC(),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteNotFound(w, capitalizeFirst(kind.Name)+" not found")
			} else {
				slog.Error("failed to update item", "error", err, "entity", kind.Name, "id", id)
				WriteInternalError(w, "Failed to update "+kind.Name)
			}
			return
		}

		WriteSuccess(w, h.toItemResponse(item), nil)
	}
}

// DeleteItem returns a handler removing one row of an entity. Deleting a
// missing id succeeds.
func (h *Handler) DeleteItem(kind model.ItemKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r)
		if err != nil {
			WriteBadRequest(w, "Invalid "+kind.Name+" ID", nil)
			return
		}

		if err := h.queries.DeleteItem(r.Context(), kind.Table, id); err != nil {
			slog.Error("failed to delete item", "error", err, "entity", kind.Name, "id", id)
			WriteInternalError(w, "Failed to delete "+kind.Name)
			return
		}

		WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
	}
}
