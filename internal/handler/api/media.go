// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/showcase-go/internal/imagehost"
)

// maxUploadMemory bounds the multipart parser's in-memory buffer; larger
// files spill to disk.
const maxUploadMemory = 8 << 20

// MediaAssetResponse is the API shape of a remote image asset.
type MediaAssetResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Bytes     int64     `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
}

func toAssetResponse(a imagehost.Asset) MediaAssetResponse {
	return MediaAssetResponse{
		ID:        a.PublicID,
		URL:       a.SecureURL,
		Format:    a.Format,
		Width:     a.Width,
		Height:    a.Height,
		Bytes:     a.Bytes,
		CreatedAt: a.CreatedAt,
	}
}

// requireMedia reports whether the media service is configured, writing a
// 503 when it is not.
func (h *Handler) requireMedia(w http.ResponseWriter) bool {
	if h.media == nil {
		WriteError(w, http.StatusServiceUnavailable, "media_unavailable", "Image host is not configured", nil)
		return false
	}
	return true
}

// UploadMedia accepts a multipart form with a "file" part, pushes the image
// through the preprocessing pipeline and stores it on the remote host.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if !h.requireMedia(w) {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteValidationError(w, map[string]string{"file": "File is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteInternalError(w, "Failed to read upload")
		return
	}

	asset, err := h.media.Upload(r.Context(), header.Filename, data)
	if err != nil {
		slog.Error("image upload failed", "category", "media", "error", err, "filename", header.Filename)
		writeServiceError(w, err)
		return
	}

	WriteCreated(w, toAssetResponse(asset))
}

// ListMedia returns the stored assets, at most imagehost.ListLimit entries.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	if !h.requireMedia(w) {
		return
	}

	assets, err := h.media.List(r.Context())
	if err != nil {
		slog.Error("failed to list media", "category", "media", "error", err)
		WriteInternalError(w, "Failed to list media")
		return
	}

	resp := make([]MediaAssetResponse, 0, len(assets))
	for _, a := range assets {
		resp = append(resp, toAssetResponse(a))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// DeleteMediaRequest carries the asset reference for a deletion. The
// reference travels in the body because asset ids contain slashes that do
// not survive as URL path segments.
type DeleteMediaRequest struct {
	Asset string `json:"asset"`
}

// DeleteMedia removes an asset from the host. The reference may be the
// asset id or a full delivery URL.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if !h.requireMedia(w) {
		return
	}

	var req DeleteMediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.media.Remove(r.Context(), req.Asset); err != nil {
		if errors.Is(err, imagehost.ErrAssetNotFound) {
			WriteNotFound(w, "Asset not found")
			return
		}
		slog.Error("image deletion failed", "category", "media", "error", err, "asset", req.Asset)
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
