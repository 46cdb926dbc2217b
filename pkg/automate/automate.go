// Package automate sets up platform automation for a project.
//
// A fixed, ordered list of [Handler] values is consulted by a [Dispatcher].
// Each handler decides from the config (and the project directory) whether
// it applies; applicable handlers render their files as artifacts, which
// the dispatcher writes through a single [output.Writer].
//
// # Handlers
//
//   - [GitHub]: .github/workflows/release.yml, a release workflow for v* tags
//   - [Zenodo]: .zenodo.json, archival metadata picked up by Zenodo
//   - [PyPI]: .github/workflows/pypi-publish.yml, trusted publishing
//
// # Failure Policy
//
// A failing handler is recorded in the [Report] and the remaining handlers
// still run. Set [Dispatcher.FailFast] to stop at the first failure.
package automate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/integrations/pypi"
	"github.com/stratum-research/autoreadme/pkg/output"
)

// Handler is one platform integration.
type Handler interface {
	// Name identifies the handler in reports ("GitHub", "Zenodo", "PyPI").
	Name() string

	// Applicable reports whether the handler should run for cfg.
	Applicable(cfg config.Config, env *Env) bool

	// Setup renders the files the handler installs.
	Setup(ctx context.Context, cfg config.Config, env *Env) ([]output.Artifact, error)

	// Requirements lists the manual steps left to the user after setup.
	Requirements() []string
}

// Git is the repository information handlers use.
// *release.Repo implements it.
type Git interface {
	OriginURL() (string, error)
}

// PackageIndex tells whether a package name is free, already published
// from repoURL, or held by another project. *pypi.Client implements it.
type PackageIndex interface {
	Check(ctx context.Context, name, repoURL string) (pypi.Registration, error)
}

// Env is the environment handlers run in.
type Env struct {
	// Dir is the project directory.
	Dir string

	// Git is the project repository, or nil outside a repository.
	Git Git

	// PyPI is consulted for name collisions when set.
	PyPI PackageIndex

	// Logger receives progress output. Nil uses log.Default().
	Logger *log.Logger
}

func (e *Env) logger() *log.Logger {
	if e != nil && e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

// InRepo reports whether the project is under version control: a
// repository was opened, or a .git marker exists in Dir.
func (e *Env) InRepo() bool {
	if e == nil {
		return false
	}
	if e.Git != nil {
		return true
	}
	_, err := os.Stat(filepath.Join(e.Dir, ".git"))
	return err == nil
}

// Handlers returns the built-in handlers in dispatch order.
func Handlers() []Handler {
	return []Handler{GitHub{}, Zenodo{}, PyPI{}}
}

// Lookup returns the built-in handler with the given name, matched
// case-insensitively.
func Lookup(name string) (Handler, bool) {
	for _, h := range Handlers() {
		if strings.EqualFold(h.Name(), name) {
			return h, true
		}
	}
	return nil, false
}
