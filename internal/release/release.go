// Package release queries the upstream Vespa release feed for published
// CLI versions. It is consumed only by release automation (vespactl);
// the launcher never touches the network.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultFeedURL is the GitHub API endpoint describing the latest
	// Vespa release.
	DefaultFeedURL = "https://api.github.com/repos/vespa-engine/vespa/releases/latest"
	// DefaultTimeout bounds a single feed request.
	DefaultTimeout = 30 * time.Second
	userAgent      = "vespacli/1.0"
)

// Client fetches release metadata from the upstream feed.
type Client struct {
	httpClient *http.Client
	feedURL    string
	token      string
	logger     hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithFeedURL overrides the release feed endpoint. Used by tests to
// point at a local server.
func WithFeedURL(url string) Option {
	return func(c *Client) { c.feedURL = url }
}

// WithToken sets a bearer token for the feed request. Unauthenticated
// GitHub API calls are heavily rate limited in CI.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a release feed client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		feedURL:    DefaultFeedURL,
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Latest returns the most recently published Vespa CLI version, with
// the tag's "v" prefix stripped.
func (c *Client) Latest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("querying release feed", "url", c.feedURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query release feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release feed returned status %d", resp.StatusCode)
	}

	var payload struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode release feed response: %w", err)
	}

	tag := strings.TrimPrefix(strings.TrimSpace(payload.TagName), "v")
	if tag == "" {
		return "", fmt.Errorf("release feed response has empty tag_name")
	}

	c.logger.Debug("latest release resolved", "version", tag)
	return tag, nil
}
