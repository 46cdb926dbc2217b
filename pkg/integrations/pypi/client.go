package pypi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stratum-research/autoreadme/pkg/cache"
	"github.com/stratum-research/autoreadme/pkg/integrations"
)

// DefaultBaseURL is the PyPI JSON API root.
const DefaultBaseURL = "https://pypi.org/pypi"

// CachePrefix namespaces this client's cache keys.
const CachePrefix = "pypi:"

// PackageInfo is the part of a PyPI project record needed to decide who
// owns a name.
type PackageInfo struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Summary  string   `json:"summary,omitempty"`
	Homepage string   `json:"home_page,omitempty"`
	URLs     []string `json:"urls,omitempty"`
}

// LinksTo reports whether the project lists repoURL as its homepage or one
// of its project URLs. URLs are compared in normalized https form.
func (p *PackageInfo) LinksTo(repoURL string) bool {
	want := canonical(repoURL)
	if want == "" {
		return false
	}
	for _, u := range append([]string{p.Homepage}, p.URLs...) {
		if canonical(u) == want {
			return true
		}
	}
	return false
}

// canonical reduces a repository URL to "host/owner/repo" in lower case.
func canonical(u string) string {
	u = strings.TrimSuffix(strings.TrimSpace(u), "/")
	u = strings.ToLower(integrations.NormalizeRepoURL(u))
	for _, p := range []string{"https://", "http://", "www."} {
		u = strings.TrimPrefix(u, p)
	}
	return strings.TrimSuffix(u, "/")
}

// Registration is the outcome of [Client.Check].
type Registration int

const (
	Available Registration = iota
	// OwnedByRepo means the name is registered and the project points back
	// at the repository being configured.
	OwnedByRepo
	Taken
)

func (r Registration) String() string {
	switch r {
	case Available:
		return "available"
	case OwnedByRepo:
		return "owned by this repository"
	default:
		return "taken"
	}
}

type Client struct {
	*integrations.Client
	baseURL string
}

func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, CachePrefix, cacheTTL, nil),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL points the client at a different index (TestPyPI or tests).
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// FetchPackage returns the project record for pkg, normalized per PEP 503.
// An unregistered name yields [integrations.ErrNotFound].
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = integrations.NormalizePkgName(pkg)
	if pkg == "" {
		return nil, fmt.Errorf("%w: empty package name", integrations.ErrNotFound)
	}

	var info PackageInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Check classifies name against the index. It always queries PyPI, since a
// name can be claimed at any moment. repoURL may be empty, in which case a
// registered name is always Taken.
func (c *Client) Check(ctx context.Context, name, repoURL string) (Registration, error) {
	info, err := c.FetchPackage(ctx, name, true)
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return Available, nil
	case err != nil:
		return Taken, err
	case info.LinksTo(repoURL):
		return OwnedByRepo, nil
	default:
		return Taken, nil
	}
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data struct {
		Info struct {
			Name        string         `json:"name"`
			Version     string         `json:"version"`
			Summary     string         `json:"summary"`
			HomePage    string         `json:"home_page"`
			ProjectURLs map[string]any `json:"project_urls"`
		} `json:"info"`
	}
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		return err
	}

	*info = PackageInfo{
		Name:     data.Info.Name,
		Version:  data.Info.Version,
		Summary:  data.Info.Summary,
		Homepage: data.Info.HomePage,
	}
	// project_urls values are occasionally null or non-string
	for _, v := range data.Info.ProjectURLs {
		if s, ok := v.(string); ok && s != "" {
			info.URLs = append(info.URLs, s)
		}
	}
	return nil
}
