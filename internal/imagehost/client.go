package imagehost

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"restaurant-admin-service/pkg/config"
)

// MaxImageSize is the largest accepted upload, checked before any network call.
const MaxImageSize = 5 * 1024 * 1024 // 5 MiB

// Validation errors surfaced before the external request is attempted.
var (
	ErrFileTooLarge = errors.New("image exceeds the 5 MiB size limit")
	ErrNotAnImage   = errors.New("file is not an image")
)

// UploadResponse is the JSON body returned by the image host
type UploadResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Client talks to the external image hosting API. One request per upload
// attempt, no retry; an orphaned upload after a later failure is accepted.
type Client struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates an image host client from configuration
func NewClient(cfg *config.ImageHostConfig) *Client {
	return &Client{
		Endpoint:   cfg.Endpoint,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Validate rejects oversized or non-image content before any network call
func Validate(contentType string, size int64) error {
	if size > MaxImageSize {
		return ErrFileTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}
	return nil
}

// Upload base64-encodes the image bytes, posts them to the host as a
// multipart form with the API key, and returns the hosted URL.
func (c *Client) Upload(image []byte) (string, error) {
	if c.APIKey == "" {
		return "", errors.New("image host API key is not configured")
	}

	encoded := base64.StdEncoding.EncodeToString(image)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("key", c.APIKey); err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if err := writer.WriteField("image", encoded); err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.Endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading image host response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image host returned status %d: %s", resp.StatusCode, string(body))
	}

	var uploadResp UploadResponse
	if err := json.Unmarshal(body, &uploadResp); err != nil {
		return "", fmt.Errorf("malformed image host response: %w", err)
	}

	if !uploadResp.Success || uploadResp.Status != http.StatusOK {
		return "", fmt.Errorf("image host rejected the upload (status %d)", uploadResp.Status)
	}

	url := uploadResp.Data.DisplayURL
	if url == "" {
		url = uploadResp.Data.URL
	}
	if url == "" {
		return "", errors.New("image host response did not contain an image URL")
	}

	return url, nil
}
