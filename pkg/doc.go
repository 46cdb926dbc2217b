// Package pkg provides the libraries behind autoreadme.
//
// # Overview
//
// Autoreadme renders one YAML project description into documentation and
// platform files. The pkg directory is organized into four areas:
//
//  1. [config] - Locating and parsing the project config
//  2. [generate] - Artifact generators (README, LICENSE, citation, metadata)
//  3. [automate] - Integration dispatcher (GitHub, Zenodo, PyPI)
//  4. [output] - The single stage that writes artifacts to disk
//
// # Architecture
//
// The typical data flow:
//
//	config.yaml
//	     ↓
//	[config] package (Config mapping)
//	     ↓
//	[generate] / [automate] packages (output.Artifact values)
//	     ↓
//	[output] package (files under the project directory)
//
// Generators and integration handlers never touch the file system; they
// return artifacts and the caller hands them to an [output.Writer].
//
// # Quick Start
//
//	cfg, _, err := config.Load(".", "")
//	if err != nil {
//	    return err
//	}
//	w := output.NewWriter(".")
//	for _, r := range generate.Run(ctx, generate.AllSet(generate.Options{}), cfg) {
//	    if r.Err != nil {
//	        continue
//	    }
//	    w.Write(r.Artifact)
//	}
//
// # Supporting Packages
//
// [release] - Release tagging with go-git and the idempotent CHANGELOG.md merge.
//
// [preview] - Local HTTP preview of README.md.
//
// [integrations] - Cached, retrying HTTP client with [integrations/github]
// (license templates) and [integrations/pypi] (package lookups).
//
// [cache] - File and null cache backends plus retry helpers.
//
// [observability] - Hooks for HTTP and cache events.
//
// [errors] - Coded errors shared by every package.
//
// [buildinfo] - Version information injected at build time.
//
// [config]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/config
// [generate]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/generate
// [automate]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/automate
// [output]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/output
// [output.Writer]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/output#Writer
// [release]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/release
// [preview]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/preview
// [integrations]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/integrations
// [integrations/github]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/integrations/github
// [integrations/pypi]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/integrations/pypi
// [cache]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/cache
// [observability]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/observability
// [errors]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/stratum-research/autoreadme/pkg/buildinfo
package pkg
