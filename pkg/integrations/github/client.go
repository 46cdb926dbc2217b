package github

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/stratum-research/autoreadme/pkg/cache"
	"github.com/stratum-research/autoreadme/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

var repoURLPattern = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([^/]+)/([^/]+?)(?:\.git)?/?(?:[?#].*)?$`)

// License is a license template from the GitHub licenses API.
type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
	Body   string `json:"body"`
}

// Client provides access to the GitHub licenses API.
// It handles HTTP requests with caching, automatic retries, and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// CachePrefix namespaces this client's cache keys.
const CachePrefix = "github:"

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
func NewClient(backend cache.Cache, token string, cacheTTL time.Duration) *Client {
	headers := map[string]string{"Accept": "application/vnd.github+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		Client:  integrations.NewClient(backend, CachePrefix, cacheTTL, headers),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL points the client at a different API root (GitHub Enterprise or tests).
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// FetchLicense retrieves the license template for key (e.g. "apache-2.0").
// Keys are matched case-insensitively. If refresh is true, cached data is bypassed.
func (c *Client) FetchLicense(ctx context.Context, key string, refresh bool) (*License, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil, fmt.Errorf("%w: empty license key", integrations.ErrNotFound)
	}

	var lic License
	err := c.Cached(ctx, "license:"+key, refresh, &lic, func() error {
		url := fmt.Sprintf("%s/licenses/%s", c.baseURL, key)
		if err := c.Get(ctx, url, &lic); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: github license %s", err, key)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if lic.Body == "" {
		return nil, fmt.Errorf("%w: github license %s has no body", integrations.ErrNotFound, key)
	}
	return &lic, nil
}

// ParseRepoURL extracts owner and repository name from a github.com URL.
// SSH and git:// forms are normalized first.
func ParseRepoURL(raw string) (owner, repo string, ok bool) {
	m := repoURLPattern.FindStringSubmatch(integrations.NormalizeRepoURL(raw))
	if len(m) < 3 {
		return "", "", false
	}
	return m[1], m[2], true
}

// RepoURL returns the canonical https URL of a repository.
func RepoURL(owner, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s", owner, repo)
}
