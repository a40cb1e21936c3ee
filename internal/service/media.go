// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds business logic that sits between the HTTP handlers
// and the storage or remote-host clients.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/showcase-go/internal/imagehost"
	"github.com/olegiv/showcase-go/internal/imaging"
	"github.com/olegiv/showcase-go/internal/model"
)

// ValidationError marks a client-side input problem. Handlers map it to a
// 400 response instead of a 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// MediaService manages images on the remote host: uploads go through the
// local preprocessing pipeline first, deletions accept either an asset id
// or a full delivery URL.
type MediaService struct {
	host     *imagehost.Client
	maxBytes int64
	bounds   model.UploadBounds
	log      *slog.Logger
}

// NewMediaService creates a media service backed by the given host client.
func NewMediaService(host *imagehost.Client, maxBytes int64, log *slog.Logger) *MediaService {
	return &MediaService{
		host:     host,
		maxBytes: maxBytes,
		bounds:   model.DefaultUploadBounds,
		log:      log,
	}
}

// Upload validates, preprocesses and sends an image to the remote host.
// The stored name is a random id so repeated uploads of the same file never
// collide.
func (s *MediaService) Upload(ctx context.Context, filename string, data []byte) (imagehost.Asset, error) {
	if len(data) == 0 {
		return imagehost.Asset{}, NewValidationError("uploaded file is empty")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return imagehost.Asset{}, NewValidationError("file exceeds the %d byte upload limit", s.maxBytes)
	}

	mimeType := imaging.DetectMimeType(data)
	if !model.IsSupportedImageType(mimeType) {
		return imagehost.Asset{}, NewValidationError("unsupported image type %s", mimeType)
	}

	prepared, err := imaging.Prepare(bytes.NewReader(data), s.bounds)
	if err != nil {
		return imagehost.Asset{}, NewValidationError("could not process image: %v", err)
	}

	name := assetName(filename)
	asset, err := s.host.Upload(ctx, name, prepared.Data)
	if err != nil {
		return imagehost.Asset{}, fmt.Errorf("uploading %q: %w", filename, err)
	}

	s.log.Info("uploaded image",
		"asset", asset.PublicID,
		"original", filename,
		"size", len(prepared.Data),
		"width", prepared.Width,
		"height", prepared.Height)
	return asset, nil
}

// assetName builds the stored asset name from the original filename plus a
// random suffix. The extension is dropped; the host keys assets by id.
func assetName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	if base == "" || base == "-" {
		base = "image"
	}
	return base + "-" + uuid.NewString()[:8]
}

// List returns the assets stored under the configured folder, at most
// imagehost.ListLimit entries.
func (s *MediaService) List(ctx context.Context) ([]imagehost.Asset, error) {
	return s.host.List(ctx)
}

// Remove deletes an asset. The reference may be either a bare asset id or
// the full delivery URL stored in a content row.
func (s *MediaService) Remove(ctx context.Context, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return NewValidationError("asset reference is required")
	}

	publicID := imagehost.ParseAssetID(ref)
	if err := s.host.Destroy(ctx, publicID); err != nil {
		return fmt.Errorf("deleting asset %q: %w", publicID, err)
	}

	s.log.Info("deleted image", "asset", publicID)
	return nil
}

// FilterImageURL blanks any image reference that is not a current provider
// URL for the configured cloud. Content rows can hold local file paths from
// the retired storage scheme or URLs of a foreign cloud; those are surfaced
// as absent rather than served.
func (s *MediaService) FilterImageURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if s.host.IsProviderURL(rawURL) {
		return rawURL
	}
	return ""
}
