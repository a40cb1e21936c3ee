package service

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/showcase-go/internal/imagehost"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fakeHost(t *testing.T, handler http.Handler) *imagehost.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return imagehost.New(imagehost.Config{
		BaseURL:   srv.URL,
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "site",
	})
}

func TestUploadRejectsNonImage(t *testing.T) {
	host := fakeHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("host should not be called for invalid input")
	}))
	svc := NewMediaService(host, 1<<20, testLogger())

	_, err := svc.Upload(context.Background(), "notes.txt", []byte("plain text"))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestUploadRejectsOversize(t *testing.T) {
	host := fakeHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("host should not be called for oversize input")
	}))
	svc := NewMediaService(host, 10, testLogger())

	_, err := svc.Upload(context.Background(), "big.png", testPNG(t, 50, 50))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestUploadSendsProcessedImage(t *testing.T) {
	var uploaded bool
	host := fakeHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploaded = true
		require.NoError(t, r.ParseMultipartForm(1<<20))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.NotEmpty(t, header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"public_id":  "site/" + r.FormValue("public_id"),
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/site/x.png",
		})
	}))
	svc := NewMediaService(host, 1<<20, testLogger())

	asset, err := svc.Upload(context.Background(), "Photo Of Team.png", testPNG(t, 50, 50))
	require.NoError(t, err)
	assert.True(t, uploaded)
	assert.Contains(t, asset.PublicID, "site/")
}

func TestRemoveAcceptsURLOrID(t *testing.T) {
	var gotIDs []string
	host := fakeHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotIDs = append(gotIDs, r.FormValue("public_id"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	}))
	svc := NewMediaService(host, 1<<20, testLogger())

	require.NoError(t, svc.Remove(context.Background(), "site/photo"))
	require.NoError(t, svc.Remove(context.Background(),
		"https://res.cloudinary.com/demo/image/upload/v1712345/site/photo.jpg"))

	require.Len(t, gotIDs, 2)
	// Both reference forms must resolve to the same asset.
	assert.Equal(t, gotIDs[0], gotIDs[1])
}

func TestRemoveEmptyReference(t *testing.T) {
	host := fakeHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("host should not be called")
	}))
	svc := NewMediaService(host, 1<<20, testLogger())

	err := svc.Remove(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestFilterImageURL(t *testing.T) {
	host := fakeHost(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	svc := NewMediaService(host, 1<<20, testLogger())

	// Provider URLs for the configured cloud pass through.
	own := "https://res.cloudinary.com/demo/image/upload/v1/site/a.jpg"
	assert.Equal(t, own, svc.FilterImageURL(own))
	// Everything else is surfaced as absent: local paths from the retired
	// storage scheme, self-hosted URLs, and other clouds on the provider.
	assert.Equal(t, "", svc.FilterImageURL("/uploads/old-scheme/photo.jpg"))
	assert.Equal(t, "", svc.FilterImageURL("https://example.com/self-hosted/photo.jpg"))
	assert.Equal(t, "", svc.FilterImageURL("https://res.cloudinary.com/other/image/upload/v1/site/a.jpg"))
	assert.Equal(t, "", svc.FilterImageURL(""))
}
