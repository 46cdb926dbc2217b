package automate

import (
	"bytes"
	"context"
	"embed"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/errors"
	"github.com/stratum-research/autoreadme/pkg/generate"
	"github.com/stratum-research/autoreadme/pkg/integrations"
	"github.com/stratum-research/autoreadme/pkg/integrations/github"
	"github.com/stratum-research/autoreadme/pkg/integrations/pypi"
	"github.com/stratum-research/autoreadme/pkg/output"
)

// Workflow paths written by the handlers.
const (
	ReleaseWorkflow = ".github/workflows/release.yml"
	PyPIWorkflow    = ".github/workflows/pypi-publish.yml"
)

//go:embed templates/*.tmpl
var workflowFS embed.FS

// workflowFuncs escape config text for YAML. quote yields a double-quoted
// scalar; oneline collapses whitespace for use inside comments.
var workflowFuncs = template.FuncMap{
	"quote":   strconv.Quote,
	"oneline": func(s string) string { return strings.Join(strings.Fields(s), " ") },
}

// renderWorkflow executes an embedded workflow template. Templates use
// [[ ]] delimiters so GitHub's ${{ }} expressions pass through untouched.
func renderWorkflow(name string, data any) (string, error) {
	tmpl, err := template.New(name).Delims("[[", "]]").Funcs(workflowFuncs).ParseFS(workflowFS, "templates/"+name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTemplateNotFound, err, "workflow template %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render workflow %s", name)
	}
	return buf.String(), nil
}

// GitHub installs a release workflow that publishes generated docs on v* tags.
// It applies inside a git repository or when `github_link` is set.
type GitHub struct{}

// Name implements Handler.
func (GitHub) Name() string { return "GitHub" }

// Applicable implements Handler.
func (GitHub) Applicable(cfg config.Config, env *Env) bool {
	return env.InRepo() || cfg.Has("github_link")
}

// Setup implements Handler.
func (GitHub) Setup(ctx context.Context, cfg config.Config, env *Env) ([]output.Artifact, error) {
	data := struct {
		Title      string
		RepoURL    string
		Maintainer string
	}{
		Title:      cfg.StringOr("title", "Repository"),
		RepoURL:    RepoURL(cfg, env),
		Maintainer: cfg.String("maintainer"),
	}
	content, err := renderWorkflow("release.yml.tmpl", data)
	if err != nil {
		return nil, err
	}
	return []output.Artifact{{Path: ReleaseWorkflow, Content: content}}, nil
}

// Requirements implements Handler.
func (GitHub) Requirements() []string {
	return []string{
		"Push this repository to GitHub",
		"Ensure GitHub Actions are enabled in repository settings",
		"Create releases with `autoreadme release --push` (or push a v* tag)",
	}
}

// RepoURL returns `github_link`, or the origin remote when it points at
// github.com. A github_link that is not an http(s) URL is ignored.
func RepoURL(cfg config.Config, env *Env) string {
	if link := cfg.String("github_link"); link != "" {
		err := errors.ValidateURL(link)
		if err == nil {
			return link
		}
		env.logger().Warn("ignoring github_link", "value", link, "error", errors.UserMessage(err))
	}
	if env == nil || env.Git == nil {
		return ""
	}
	origin, err := env.Git.OriginURL()
	if err != nil || origin == "" {
		return ""
	}
	owner, repo, ok := github.ParseRepoURL(origin)
	if !ok {
		env.logger().Debug("origin is not a GitHub repository", "url", origin)
		return ""
	}
	return github.RepoURL(owner, repo)
}

// Zenodo writes .zenodo.json. It applies when `doi` or `zenodo_link`
// mentions Zenodo.
type Zenodo struct{}

// Name implements Handler.
func (Zenodo) Name() string { return "Zenodo" }

// Applicable implements Handler.
func (Zenodo) Applicable(cfg config.Config, env *Env) bool {
	return mentionsZenodo(cfg.String("doi")) || mentionsZenodo(cfg.String("zenodo_link"))
}

func mentionsZenodo(s string) bool {
	return strings.Contains(strings.ToLower(s), "zenodo")
}

// Setup implements Handler.
func (Zenodo) Setup(ctx context.Context, cfg config.Config, env *Env) ([]output.Artifact, error) {
	a, err := generate.Artifact(ctx, generate.Zenodo{}, cfg)
	if err != nil {
		return nil, err
	}
	return []output.Artifact{a}, nil
}

// Requirements implements Handler.
func (Zenodo) Requirements() []string {
	return []string{
		"Create a Zenodo account at https://zenodo.org/",
		"Enable the GitHub integration for this repository in Zenodo",
		"The .zenodo.json file will automatically populate metadata fields",
		"Update the DOI in config.yaml once your record is published",
	}
}

// PyPI installs a trusted-publishing workflow. It applies when `type` is
// python-package.
type PyPI struct{}

// Name implements Handler.
func (PyPI) Name() string { return "PyPI" }

// Applicable implements Handler.
func (PyPI) Applicable(cfg config.Config, env *Env) bool {
	return strings.EqualFold(strings.TrimSpace(cfg.String("type")), config.TypePythonPackage)
}

// Setup implements Handler.
func (PyPI) Setup(ctx context.Context, cfg config.Config, env *Env) ([]output.Artifact, error) {
	dir := ""
	if env != nil {
		dir = env.Dir
	}
	name := PackageName(cfg, dir)
	if err := errors.ValidatePythonPackageName(name); err != nil {
		return nil, err
	}

	if env != nil && env.PyPI != nil {
		reg, err := env.PyPI.Check(ctx, name, RepoURL(cfg, env))
		switch {
		case err != nil:
			env.logger().Debug("could not check PyPI", "package", name, "error", err)
		case reg == pypi.OwnedByRepo:
			env.logger().Info("package is already published from this repository", "package", name)
		case reg == pypi.Taken:
			env.logger().Warn("package name is already registered on PyPI by another project", "package", name)
		}
	}

	data := struct {
		Title      string
		Package    string
		Maintainer string
	}{
		Title:      cfg.StringOr("title", "Python Package"),
		Package:    name,
		Maintainer: cfg.String("maintainer"),
	}
	content, err := renderWorkflow("pypi-publish.yml.tmpl", data)
	if err != nil {
		return nil, err
	}
	return []output.Artifact{{Path: PyPIWorkflow, Content: content}}, nil
}

// Requirements implements Handler.
func (PyPI) Requirements() []string {
	return []string{
		"Register your package name on PyPI: https://pypi.org/",
		"Set up trusted publishing in PyPI project settings",
		"Link your GitHub repository to PyPI trusted publishing",
		"Create releases with version tags to trigger automatic publishing",
		"Ensure your pyproject.toml is properly configured",
	}
}

// PackageName resolves the distribution name: `package_name`, then the
// name in dir/pyproject.toml, then the title lower-cased with spaces and
// underscores turned into hyphens.
func PackageName(cfg config.Config, dir string) string {
	if name := cfg.String("package_name"); name != "" {
		return name
	}
	if name := pyprojectName(dir); name != "" {
		return name
	}
	title := cfg.StringOr("title", "my-package")
	return integrations.NormalizePkgName(strings.Join(strings.Fields(title), "-"))
}

func pyprojectName(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if err != nil {
		return ""
	}
	var pyproject struct {
		Tool struct {
			Poetry struct {
				Name string `toml:"name"`
			} `toml:"poetry"`
		} `toml:"tool"`
		Project struct {
			Name string `toml:"name"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return ""
	}
	if pyproject.Project.Name != "" {
		return pyproject.Project.Name
	}
	return pyproject.Tool.Poetry.Name
}
