// Package media implements the client for the external media host that
// stores video files, thumbnails, and profile images. Uploads are handed a
// local temporary file (spooled there by the multipart handler); the file is
// always removed after the attempt, whether or not the upload succeeded.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Asset describes a file stored on the media host.
type Asset struct {
	URL      string  `json:"url"`
	PublicID string  `json:"public_id"`
	Duration float64 `json:"duration,omitempty"` // seconds; videos only
}

// Host is the contract the services depend on. Upload moves a local file to
// the host; Destroy removes a previously uploaded asset by its public id.
type Host interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

// Client talks to a cloudinary-style upload API: multipart POST with an
// api_key/timestamp/signature triple, JSON response carrying the asset URL
// and public id.
type Client struct {
	BaseURL   string // e.g. https://api.cloudinary.example/v1_1/<cloud>
	APIKey    string
	APISecret string

	// HTTPClient is a seam for tests; defaults to a client with a generous
	// timeout since video uploads are awaited inline.
	HTTPClient *http.Client
}

// NewClient builds a Client for the given cloud. baseURL overrides the
// derived endpoint when talking to a self-hosted or test server.
func NewClient(cloudName, apiKey, apiSecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s", cloudName)
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		APISecret:  apiSecret,
		HTTPClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

// Upload sends the file at localPath to the host and returns the stored
// asset. The local file is removed before returning, on success and on
// failure alike, so no temp files accumulate under the spool directory.
func (c *Client) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if localPath == "" {
		return nil, fmt.Errorf("media: empty local path")
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", localPath).Msg("failed to remove spool file")
		}
	}()

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("media: open %s: %w", localPath, err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	fields := map[string]string{
		"api_key":       c.APIKey,
		"timestamp":     ts,
		"resource_type": "auto",
	}
	fields["signature"] = c.sign(map[string]string{"timestamp": ts, "resource_type": "auto"})

	go func() {
		var werr error
		defer func() { pw.CloseWithError(werr) }()
		for k, v := range fields {
			if werr = mw.WriteField(k, v); werr != nil {
				return
			}
		}
		part, err := mw.CreateFormFile("file", filepath.Base(localPath))
		if err != nil {
			werr = err
			return
		}
		if _, werr = io.Copy(part, f); werr != nil {
			return
		}
		werr = mw.Close()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auto/upload", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("media: upload status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		URL       string  `json:"url"`
		SecureURL string  `json:"secure_url"`
		PublicID  string  `json:"public_id"`
		Duration  float64 `json:"duration"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("media: decode upload response: %w", err)
	}
	url := out.SecureURL
	if url == "" {
		url = out.URL
	}
	if url == "" || out.PublicID == "" {
		return nil, fmt.Errorf("media: upload response missing url/public_id")
	}
	return &Asset{URL: url, PublicID: out.PublicID, Duration: out.Duration}, nil
}

// Destroy removes an asset by public id. resourceType is "video" for video
// files and "image" otherwise; empty defaults to "image". Callers treat
// failures as best-effort cleanup and only log them.
func (c *Client) Destroy(ctx context.Context, publicID, resourceType string) error {
	if publicID == "" {
		return nil
	}
	if resourceType == "" {
		resourceType = "image"
	}
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	form := map[string]string{
		"public_id": publicID,
		"timestamp": ts,
	}
	sig := c.sign(form)

	body := strings.NewReader(fmt.Sprintf(
		"public_id=%s&timestamp=%s&api_key=%s&signature=%s", publicID, ts, c.APIKey, sig))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s/destroy", c.BaseURL, resourceType), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("media: destroy: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("media: destroy status %d", resp.StatusCode)
	}
	return nil
}

// sign builds the request signature: SHA-1 over the sorted key=value pairs
// joined with '&', concatenated with the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.APISecret))
	return hex.EncodeToString(sum[:])
}
