// Package integrations provides the HTTP clients autoreadme uses to talk to
// remote services.
//
// # Overview
//
// Each service has its own subpackage:
//
//   - [github]: license texts from the GitHub licenses API
//   - [pypi]: package name lookups on the Python Package Index
//
// # Client Pattern
//
// All clients follow a consistent pattern:
//
//	client := pypi.NewClient(backend, 24*time.Hour) // cache backend and TTL
//	pkg, err := client.FetchPackage(ctx, "fastapi", false) // false = use cache
//
// Clients handle:
//   - HTTP requests with retry on network errors and 5xx responses
//   - Response caching through a [cache.Cache] backend
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides the shared HTTP functionality used by every
// subpackage client.
//
// [github]: github.com/stratum-research/autoreadme/pkg/integrations/github
// [pypi]: github.com/stratum-research/autoreadme/pkg/integrations/pypi
// [cache.Cache]: github.com/stratum-research/autoreadme/pkg/cache.Cache
package integrations
