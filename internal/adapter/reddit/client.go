// Package reddit implements the bot's transport: an OAuth2 script-app
// client for the reddit API and a polling loop over the unread inbox.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/vbalak/kanjibot/internal/domain"
)

const (
	defaultAPIURL   = "https://oauth.reddit.com"
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"

	unreadLimit = 100
)

// Credentials holds the script-app secrets used for the password grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
}

// Client talks to the reddit API on behalf of the bot account.
type Client struct {
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client that authenticates with the password grant.
// Tokens are renewed transparently when they expire; reddit script apps
// do not issue refresh tokens, so renewal re-runs the grant.
func NewClient(ctx context.Context, creds Credentials, logger *slog.Logger) *Client {
	ua := &userAgentTransport{agent: creds.UserAgent, base: http.DefaultTransport}

	// The token endpoint must also carry the custom User-Agent: reddit
	// throttles the default Go client string aggressively.
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
		Transport: ua,
		Timeout:   15 * time.Second,
	})

	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  defaultTokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	src := oauth2.ReuseTokenSource(nil, &passwordTokenSource{
		ctx:      tokenCtx,
		conf:     conf,
		username: creds.Username,
		password: creds.Password,
	})

	return &Client{
		apiURL: defaultAPIURL,
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: src, Base: ua},
			Timeout:   15 * time.Second,
		},
		log: logger.With("adapter", "reddit"),
	}
}

// NewClientWithURL creates a Client against a custom API URL with an
// already-authenticated HTTP client (for testing).
func NewClientWithURL(apiURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: httpClient,
		log:        logger.With("adapter", "reddit"),
	}
}

// passwordTokenSource re-runs the resource-owner password grant every
// time the cached token expires.
type passwordTokenSource struct {
	ctx      context.Context
	conf     *oauth2.Config
	username string
	password string
}

func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	return s.conf.PasswordCredentialsToken(s.ctx, s.username, s.password)
}

// userAgentTransport stamps every request with the configured User-Agent.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(clone)
}

// FetchUnread returns the unread messages from the bot account's inbox,
// in reddit's listing order (newest first).
func (c *Client) FetchUnread(ctx context.Context) ([]domain.Mention, error) {
	reqURL := fmt.Sprintf("%s/message/unread?limit=%d", c.apiURL, unreadLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("reddit: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit: fetch unread: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit: fetch unread: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reddit: read body: %w", err)
	}

	var l listing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("reddit: decode listing: %w", err)
	}

	mentions := make([]domain.Mention, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		mentions = append(mentions, domain.Mention{
			Fullname:  child.Data.Name,
			Author:    child.Data.Author,
			Subreddit: child.Data.Subreddit,
			Body:      child.Data.Body,
		})
	}

	c.log.DebugContext(ctx, "fetched unread inbox", slog.Int("count", len(mentions)))

	return mentions, nil
}

// Reply posts text as a comment (or message reply) under the given thing.
func (c *Client) Reply(ctx context.Context, fullname, text string) error {
	form := url.Values{
		"api_type": {"json"},
		"thing_id": {fullname},
		"text":     {text},
	}

	body, err := c.postForm(ctx, "/api/comment", form)
	if err != nil {
		return fmt.Errorf("reddit: reply to %s: %w", fullname, err)
	}

	var r apiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("reddit: reply to %s: decode response: %w", fullname, err)
	}
	if len(r.JSON.Errors) > 0 {
		return fmt.Errorf("reddit: reply to %s: api error: %s", fullname, joinAPIErrors(r.JSON.Errors))
	}

	return nil
}

// MarkRead marks the given inbox item as read so the next poll skips it.
func (c *Client) MarkRead(ctx context.Context, fullname string) error {
	form := url.Values{"id": {fullname}}

	if _, err := c.postForm(ctx, "/api/read_message", form); err != nil {
		return fmt.Errorf("reddit: mark %s read: %w", fullname, err)
	}

	return nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}

// listing mirrors the subset of reddit's Listing envelope the bot reads.
type listing struct {
	Data struct {
		Children []struct {
			Data messageData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type messageData struct {
	Name      string  `json:"name"`
	Author    string  `json:"author"`
	Subreddit *string `json:"subreddit"` // null for private messages
	Body      string  `json:"body"`
}

// apiResponse mirrors the api_type=json error envelope.
type apiResponse struct {
	JSON struct {
		Errors [][]string `json:"errors"`
	} `json:"json"`
}

func joinAPIErrors(errs [][]string) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, strings.Join(e, " "))
	}
	return strings.Join(parts, "; ")
}
