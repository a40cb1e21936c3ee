// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported MIME types for upload. Only images are accepted; the hosting
// provider serves everything back as web-optimized derivatives.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// UploadBounds is the bounding box applied to every uploaded image before
// it is forwarded to the hosting provider. Images already inside the box
// pass through untouched.
type UploadBounds struct {
	Width   int
	Height  int
	Quality int
}

// DefaultUploadBounds fits uploads into a 1920x1080 box at quality 85.
var DefaultUploadBounds = UploadBounds{Width: 1920, Height: 1080, Quality: 85}

// SupportedImageTypes returns the list of accepted image MIME types.
func SupportedImageTypes() []string {
	return []string{MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP}
}

// IsSupportedImageType checks if a MIME type is accepted for upload.
func IsSupportedImageType(mimeType string) bool {
	for _, t := range SupportedImageTypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}
