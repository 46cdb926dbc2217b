// Package generate turns a project [config.Config] into artifact text.
//
// Each artifact has its own [Generator]. Generators never touch the file
// system for output; callers collect the returned text as
// [output.Artifact] values and hand them to an [output.Writer].
//
// # Artifacts
//
//   - README.md: [Readme], rendered from a text/template
//   - LICENSE: [License], inline MIT/Creative Commons texts or GitHub templates
//   - citation.bib: [Citation], one or two BibTeX records
//   - dataset_card.json: [DatasetCard], dataset card metadata
//   - .zenodo.json: [Zenodo], archival deposit metadata
//
// # Error Policy
//
// Optional keys render as empty values. A required key that is absent
// fails with MISSING_FIELD naming the key. The license generator never
// fails: problems are reported inside the generated text.
package generate

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/output"
)

// Artifact file names.
const (
	ReadmeFile      = "README.md"
	LicenseFile     = "LICENSE"
	CitationFile    = "citation.bib"
	DatasetCardFile = "dataset_card.json"
	ZenodoFile      = ".zenodo.json"
)

// Generator produces the text of one artifact.
type Generator interface {
	// Name is the artifact's file name relative to the output directory.
	Name() string

	// Generate renders the artifact from cfg.
	Generate(ctx context.Context, cfg config.Config) (string, error)
}

// Options configures the generators that need more than the config.
type Options struct {
	// Dir is the project directory searched for templates/readme.md.tmpl.
	Dir string

	// Template is an explicit README template path. It must exist.
	Template string

	// Licenses fetches license templates not bundled with autoreadme.
	// Nil limits the license generator to the inline texts.
	Licenses LicenseSource

	// Logger receives debug output. Nil uses log.Default().
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// ReadmeSet returns the generators run by `make readme`.
func ReadmeSet(opts Options) []Generator {
	return []Generator{NewReadme(opts), NewLicense(opts)}
}

// AllSet returns the generators run by `make all`.
func AllSet(opts Options) []Generator {
	return append(ReadmeSet(opts), Citation{})
}

// MetadataSet returns the generators run by `make metadata`.
func MetadataSet() []Generator {
	return []Generator{DatasetCard{}, Zenodo{}}
}

// Result is the outcome of running one generator.
type Result struct {
	Artifact output.Artifact
	Err      error
}

// Run executes generators in order. A failing generator does not stop the
// ones after it; its error is recorded in its Result.
func Run(ctx context.Context, gens []Generator, cfg config.Config) []Result {
	results := make([]Result, 0, len(gens))
	for _, g := range gens {
		content, err := g.Generate(ctx, cfg)
		results = append(results, Result{
			Artifact: output.Artifact{Path: g.Name(), Content: content},
			Err:      err,
		})
	}
	return results
}

// Artifact runs a single generator and wraps its output.
func Artifact(ctx context.Context, g Generator, cfg config.Config) (output.Artifact, error) {
	content, err := g.Generate(ctx, cfg)
	if err != nil {
		return output.Artifact{}, err
	}
	return output.Artifact{Path: g.Name(), Content: content}, nil
}
