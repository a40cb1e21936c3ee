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

// MapPointResponse is the API shape of a map location marker.
type MapPointResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Icon        string    `json:"icon"`
	Position    int64     `json:"position"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toMapPointResponse(p store.MapPoint) MapPointResponse {
	return MapPointResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Icon:        p.Icon,
		Position:    p.Position,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// MapPointRequest is the create and update payload for a map point.
type MapPointRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Icon        string   `json:"icon"`
	Position    *int64   `json:"position"`
	IsActive    *bool    `json:"is_active"`
}

func (req *MapPointRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		fieldErrors["latitude"] = "Latitude must be between -90 and 90"
	}
	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		fieldErrors["longitude"] = "Longitude must be between -180 and 180"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// ListPublicMapPoints returns the active map points.
func (h *Handler) ListPublicMapPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.queries.ListActiveMapPoints(r.Context())
	if err != nil {
		slog.Error("failed to list map points", "error", err)
		WriteInternalError(w, "Failed to list map points")
		return
	}

	resp := make([]MapPointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, toMapPointResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// ListAdminMapPoints returns every map point.
func (h *Handler) ListAdminMapPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.queries.ListMapPoints(r.Context())
	if err != nil {
		slog.Error("failed to list map points", "error", err)
		WriteInternalError(w, "Failed to list map points")
		return
	}

	resp := make([]MapPointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, toMapPointResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetMapPoint returns one map point by id.
func (h *Handler) GetMapPoint(w http.ResponseWriter, r *http.Request) {
	point, ok := requireEntityByID(w, r, "map point", func(id int64) (store.MapPoint, error) {
		return h.queries.GetMapPoint(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, toMapPointResponse(point), nil)
}

// CreateMapPoint inserts a map point.
func (h *Handler) CreateMapPoint(w http.ResponseWriter, r *http.Request) {
	var req MapPointRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	arg := store.CreateMapPointParams{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
		Now:         time.Now().UTC(),
	}
	if req.Latitude != nil {
		arg.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		arg.Longitude = *req.Longitude
	}
	if req.Position != nil {
		arg.Position = *req.Position
	}
	if req.IsActive != nil {
		arg.IsActive = *req.IsActive
	}

	point, err := h.queries.CreateMapPoint(r.Context(), arg)
	if err != nil {
		slog.Error("failed to create map point", "error", err)
		WriteInternalError(w, "Failed to create map point")
		return
	}

	WriteCreated(w, toMapPointResponse(point))
}

// UpdateMapPoint replaces a map point. A missing id yields 404.
func (h *Handler) UpdateMapPoint(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid map point ID", nil)
		return
	}

	var req MapPointRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	arg := store.UpdateMapPointParams{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
		Now:         time.Now().UTC(),
	}
	if req.Latitude != nil {
		arg.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		arg.Longitude = *req.Longitude
	}
	if req.Position != nil {
		arg.Position = *req.Position
	}
	if req.IsActive != nil {
		arg.IsActive = *req.IsActive
	}

	point, err := h.queries.UpdateMapPoint(r.Context(), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Map point not found")
		} else {
			slog.Error("failed to update map point", "error", err, "id", id)
			WriteInternalError(w, "Failed to update map point")
		}
		return
	}

	WriteSuccess(w, toMapPointResponse(point), nil)
}

// DeleteMapPoint removes a map point. Deleting a missing id succeeds.
func (h *Handler) DeleteMapPoint(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid map point ID", nil)
		return
	}

	if err := h.queries.DeleteMapPoint(r.Context(), id); err != nil {
		slog.Error("failed to delete map point", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete map point")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// CoordinatesRequest is the payload for the coordinate-only update.
type CoordinatesRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// UpdateMapPointCoordinates patches only the coordinates of a map point.
func (h *Handler) UpdateMapPointCoordinates(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid map point ID", nil)
		return
	}

	var req CoordinatesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	if req.Latitude == nil {
		fieldErrors["latitude"] = "Latitude is required"
	} else if *req.Latitude < -90 || *req.Latitude > 90 {
		fieldErrors["latitude"] = "Latitude must be between -90 and 90"
	}
	if req.Longitude == nil {
		fieldErrors["longitude"] = "Longitude is required"
	} else if *req.Longitude < -180 || *req.Longitude > 180 {
		fieldErrors["longitude"] = "Longitude must be between -180 and 180"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	point, err := h.queries.UpdateMapPointCoordinates(r.Context(), id, *req.Latitude, *req.Longitude, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Map point not found")
		} else {
			slog.Error("failed to update coordinates", "error", err, "id", id)
			WriteInternalError(w, "Failed to update coordinates")
		}
		return
	}

	WriteSuccess(w, toMapPointResponse(point), nil)
}

// FillCoordinatesRequest carries the fallback coordinates for the bulk fill.
type FillCoordinatesRequest struct {
	Default *CoordinatesRequest `json:"default"`
}

// FillMapPointCoordinates assigns the default coordinates to every point
// still at the zero position. Points with real coordinates are untouched.
func (h *Handler) FillMapPointCoordinates(w http.ResponseWriter, r *http.Request) {
	var req FillCoordinatesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Default == nil || req.Default.Latitude == nil || req.Default.Longitude == nil {
		WriteValidationError(w, map[string]string{"default": "Default coordinates are required"})
		return
	}

	points, err := h.queries.ListMapPointsWithoutCoordinates(r.Context())
	if err != nil {
		slog.Error("failed to list points without coordinates", "error", err)
		WriteInternalError(w, "Failed to fill coordinates")
		return
	}

	now := time.Now().UTC()
	filled := make([]MapPointResponse, 0, len(points))
	for _, p := range points {
		updated, err := h.queries.UpdateMapPointCoordinates(r.Context(), p.ID, *req.Default.Latitude, *req.Default.Longitude, now)
		if err != nil {
			slog.Error("failed to fill coordinates", "error", err, "id", p.ID)
			WriteInternalError(w, "Failed to fill coordinates")
			return
		}
		filled = append(filled, toMapPointResponse(updated))
	}

	WriteSuccess(w, filled, &Meta{Total: int64(len(filled))})
}
