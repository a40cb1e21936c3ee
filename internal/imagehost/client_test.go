package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		BaseURL:   srv.URL,
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "site",
	})
}

func TestUpload(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1_1/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "site", r.FormValue("folder"))
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.NotEmpty(t, r.FormValue("signature"))
		assert.NotEmpty(t, r.FormValue("timestamp"))

		_, _, err := r.FormFile("file")
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"public_id":  "site/photo",
			"format":     "jpg",
			"width":      800,
			"height":     600,
			"bytes":      12345,
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/site/photo.jpg",
		})
	}))

	asset, err := client.Upload(context.Background(), "photo", []byte("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "site/photo", asset.PublicID)
	assert.Equal(t, 800, asset.Width)
}

func TestUploadError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Invalid image file"},
		})
	}))

	_, err := client.Upload(context.Background(), "broken", []byte("not an image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestFailedRequestIsNotRetried(t *testing.T) {
	var calls int
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "host down"},
		})
	}))

	_, err := client.Upload(context.Background(), "photo", []byte("bytes"))
	require.Error(t, err)
	assert.Equal(t, 1, calls, "a failing request must surface immediately")
}

func TestList(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1_1/demo/resources/image", r.URL.Path)
		assert.Equal(t, "site/", r.URL.Query().Get("prefix"))
		assert.Equal(t, "50", r.URL.Query().Get("max_results"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"resources": []map[string]any{
				{"public_id": "site/a", "format": "png"},
				{"public_id": "site/b", "format": "jpg"},
			},
		})
	}))

	assets, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "site/a", assets[0].PublicID)
}

func TestDestroy(t *testing.T) {
	var gotPublicID string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1_1/demo/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotPublicID = r.FormValue("public_id")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	}))

	require.NoError(t, client.Destroy(context.Background(), "site/photo"))
	assert.Equal(t, "site/photo", gotPublicID)
}

func TestDestroyMissingAsset(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The host answers 200 even when nothing matched.
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "not found"})
	}))

	err := client.Destroy(context.Background(), "site/ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAssetNotFound))
}

func TestParseAssetID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"delivery URL with version",
			"https://res.cloudinary.com/demo/image/upload/v1712345/site/photo.jpg",
			"site/photo",
		},
		{
			"delivery URL without version",
			"https://res.cloudinary.com/demo/image/upload/site/photo.png",
			"site/photo",
		},
		{
			"already a public id",
			"site/photo",
			"site/photo",
		},
		{
			"nested folder",
			"https://res.cloudinary.com/demo/image/upload/v99/site/2026/photo.webp",
			"site/2026/photo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAssetID(tt.in))
		})
	}
}

func TestIsProviderURL(t *testing.T) {
	client := New(Config{CloudName: "demo", Folder: "site"})

	assert.True(t, client.IsProviderURL("https://res.cloudinary.com/demo/image/upload/v1/site/a.jpg"))
	assert.False(t, client.IsProviderURL("https://res.cloudinary.com/other/image/upload/v1/site/a.jpg"))
	assert.False(t, client.IsProviderURL("https://example.com/images/a.jpg"))
	assert.False(t, client.IsProviderURL("not a url"))
}
