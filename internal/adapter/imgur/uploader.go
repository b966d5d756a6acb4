// Package imgur uploads images to the imgur API for externally hosted
// reply illustrations. Hosting is best-effort: a failed upload yields an
// empty URL, never an error that could break a reply.
package imgur

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.imgur.com/3/image"

// Uploader posts images to imgur using anonymous Client-ID auth.
type Uploader struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates an Uploader with the default imgur API URL.
func New(clientID string, logger *slog.Logger) *Uploader {
	return &Uploader{
		baseURL:    defaultBaseURL,
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.With("adapter", "imgur"),
	}
}

// NewWithURL creates an Uploader with a custom base URL (for testing).
func NewWithURL(baseURL, clientID string, logger *slog.Logger) *Uploader {
	u := New(clientID, logger)
	u.baseURL = baseURL
	return u
}

type apiResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

// Upload posts a PNG to imgur and returns its public URL. Transport
// failures and API rejections both come back as an empty URL: the
// caller renders a plain, non-linked block instead.
func (u *Uploader) Upload(ctx context.Context, image []byte, title string) (string, error) {
	form := url.Values{}
	form.Set("image", base64.StdEncoding.EncodeToString(image))
	form.Set("type", "base64")
	form.Set("title", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("imgur: create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.clientID)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		u.log.WarnContext(ctx, "imgur upload failed",
			slog.String("title", title), slog.String("error", err.Error()))
		return "", nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		u.log.WarnContext(ctx, "imgur read body failed",
			slog.String("title", title), slog.String("error", err.Error()))
		return "", nil
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		u.log.WarnContext(ctx, "imgur decode failed",
			slog.String("title", title), slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
		return "", nil
	}

	if !parsed.Success || parsed.Data.Link == "" {
		u.log.WarnContext(ctx, "imgur upload rejected",
			slog.String("title", title), slog.Int("status", resp.StatusCode))
		return "", nil
	}

	u.log.DebugContext(ctx, "imgur upload done",
		slog.String("title", title), slog.String("link", parsed.Data.Link))

	return parsed.Data.Link, nil
}
