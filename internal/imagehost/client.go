// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imagehost implements a client for a Cloudinary-compatible remote
// image host. Uploads, listings and deletions all go through the host's
// HTTP API; nothing is stored locally.
package imagehost

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ListLimit is the maximum number of assets a single listing request
// returns. The host caps result pages at this size.
const ListLimit = 50

// Asset is one remote image as reported by the host.
type Asset struct {
	PublicID  string    `json:"public_id"`
	Format    string    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Bytes     int64     `json:"bytes"`
	SecureURL string    `json:"secure_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Config holds the image host credentials.
type Config struct {
	// BaseURL overrides the API endpoint, used in tests. Empty means the
	// production host.
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	// Folder is the asset prefix every upload lands under.
	Folder string
}

// Client talks to the image host API.
type Client struct {
	http      *resty.Client
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	now       func() time.Time
}

const defaultBaseURL = "https://api.cloudinary.com"

// New creates an image host client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Transient host failures surface immediately; the client never
	// retries on the caller's behalf.
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		http:      http,
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
		now:       time.Now,
	}
}

// Folder returns the configured asset folder.
func (c *Client) Folder() string {
	return c.folder
}

// sign builds the request signature the host expects: the SHA-1 hex digest
// of the sorted query-style parameter string followed by the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

type uploadResponse struct {
	Asset
	Error *hostError `json:"error"`
}

type hostError struct {
	Message string `json:"message"`
}

// Upload sends image bytes to the host and returns the stored asset. The
// asset lands under the configured folder with the given name.
func (c *Client) Upload(ctx context.Context, name string, data []byte) (Asset, error) {
	timestamp := fmt.Sprintf("%d", c.now().Unix())
	params := map[string]string{
		"folder":    c.folder,
		"public_id": name,
		"timestamp": timestamp,
	}

	var result uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", name, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"folder":    c.folder,
			"public_id": name,
			"timestamp": timestamp,
			"api_key":   c.apiKey,
			"signature": c.sign(params),
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/v1_1/%s/image/upload", c.cloudName))
	if err != nil {
		return Asset{}, fmt.Errorf("uploading to image host: %w", err)
	}
	if resp.IsError() {
		return Asset{}, hostErrorf("upload", resp.StatusCode(), result.Error)
	}

	return result.Asset, nil
}

type listResponse struct {
	Resources []Asset    `json:"resources"`
	Error     *hostError `json:"error"`
}

// List returns up to ListLimit assets under the configured folder, newest
// first.
func (c *Client) List(ctx context.Context) ([]Asset, error) {
	var result listResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.apiKey, c.apiSecret).
		SetQueryParams(map[string]string{
			"prefix":      c.folder + "/",
			"type":        "upload",
			"max_results": fmt.Sprintf("%d", ListLimit),
			"direction":   "desc",
		}).
		SetResult(&result).
		SetError(&result).
		Get(fmt.Sprintf("/v1_1/%s/resources/image", c.cloudName))
	if err != nil {
		return nil, fmt.Errorf("listing image host assets: %w", err)
	}
	if resp.IsError() {
		return nil, hostErrorf("list", resp.StatusCode(), result.Error)
	}

	return result.Resources, nil
}

type destroyResponse struct {
	Result string     `json:"result"`
	Error  *hostError `json:"error"`
}

// ErrAssetNotFound is returned when the host reports no asset under the
// requested public id.
var ErrAssetNotFound = errors.New("asset not found")

// Destroy deletes an asset by its public id. The host answers 200 with a
// result field; "not found" in that field means no asset matched and is
// returned as ErrAssetNotFound.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	timestamp := fmt.Sprintf("%d", c.now().Unix())
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	var result destroyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"public_id": publicID,
			"timestamp": timestamp,
			"api_key":   c.apiKey,
			"signature": c.sign(params),
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/v1_1/%s/image/destroy", c.cloudName))
	if err != nil {
		return fmt.Errorf("deleting image host asset: %w", err)
	}
	if resp.IsError() {
		return hostErrorf("destroy", resp.StatusCode(), result.Error)
	}
	switch result.Result {
	case "ok":
		return nil
	case "not found":
		return fmt.Errorf("%w: %s", ErrAssetNotFound, publicID)
	default:
		return fmt.Errorf("image host destroy failed: %q", result.Result)
	}
}

func hostErrorf(op string, status int, herr *hostError) error {
	if herr != nil && herr.Message != "" {
		return fmt.Errorf("image host %s failed: %s (status %d)", op, herr.Message, status)
	}
	return fmt.Errorf("image host %s failed with status %d", op, status)
}

// ParseAssetID extracts the public id from a delivery URL of the host.
// Returns the input unchanged when it does not look like a URL, so callers
// can pass either form. The version segment and the file extension are
// stripped: ".../upload/v123/folder/name.png" yields "folder/name".
func ParseAssetID(s string) string {
	if !strings.Contains(s, "://") {
		return s
	}

	u, err := url.Parse(s)
	if err != nil {
		return s
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	uploadIdx := -1
	for i, seg := range segments {
		if seg == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx == len(segments)-1 {
		return s
	}

	rest := segments[uploadIdx+1:]
	// Skip the version segment if present.
	if len(rest) > 1 && len(rest[0]) > 1 && rest[0][0] == 'v' && isDigits(rest[0][1:]) {
		rest = rest[1:]
	}

	id := strings.Join(rest, "/")
	if dot := strings.LastIndex(id, "."); dot > strings.LastIndex(id, "/") {
		id = id[:dot]
	}
	return id
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// IsProviderURL reports whether a URL points at the configured image host
// and cloud. Content rows can reference stale asset URLs after a deletion;
// callers use this check before trusting such references.
func (c *Client) IsProviderURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	if !strings.Contains(u.Host, "cloudinary.com") && !strings.Contains(u.Host, "res.cloudinary") {
		return false
	}
	return strings.Contains(u.Path, "/"+c.cloudName+"/")
}
