package automate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/errors"
	"github.com/stratum-research/autoreadme/pkg/integrations/pypi"
)

type fakeGit struct {
	origin string
	err    error
}

func (f fakeGit) OriginURL() (string, error) { return f.origin, f.err }

type fakeIndex struct {
	names map[string]pypi.Registration
	err   error
	// repoURL records the repository the handler compared against.
	repoURL *string
}

func (f fakeIndex) Check(ctx context.Context, name, repoURL string) (pypi.Registration, error) {
	if f.repoURL != nil {
		*f.repoURL = repoURL
	}
	return f.names[name], f.err
}

func testEnv(t *testing.T) *Env {
	t.Helper()
	return &Env{Dir: t.TempDir(), Logger: log.New(io.Discard)}
}

func TestGitHubApplicable(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.Config
		marker bool
		git    Git
		want   bool
	}{
		{"neither", config.Config{}, false, nil, false},
		{"github_link", config.Config{"github_link": "https://github.com/a/b"}, false, nil, true},
		{"empty github_link", config.Config{"github_link": ""}, false, nil, false},
		{"git marker", config.Config{}, true, nil, true},
		{"opened repository", config.Config{}, false, fakeGit{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t)
			env.Git = tt.git
			if tt.marker {
				if err := os.Mkdir(filepath.Join(env.Dir, ".git"), 0o755); err != nil {
					t.Fatal(err)
				}
			}
			if got := (GitHub{}).Applicable(tt.cfg, env); got != tt.want {
				t.Errorf("Applicable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZenodoApplicable(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want bool
	}{
		{"zenodo doi", config.Config{"doi": "10.5281/zenodo.123456"}, true},
		{"uppercase doi", config.Config{"doi": "10.5281/ZENODO.1"}, true},
		{"zenodo link", config.Config{"zenodo_link": "https://Zenodo.org/record/1"}, true},
		{"other doi", config.Config{"doi": "10.1000/xyz123"}, false},
		{"none", config.Config{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Zenodo{}).Applicable(tt.cfg, nil); got != tt.want {
				t.Errorf("Applicable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPyPIApplicable(t *testing.T) {
	for typ, want := range map[string]bool{
		"python-package": true,
		"Python-Package": true,
		"dataset":        false,
		"":               false,
	} {
		if got := (PyPI{}).Applicable(config.Config{"type": typ}, nil); got != want {
			t.Errorf("Applicable(type=%q) = %v, want %v", typ, got, want)
		}
	}
}

func TestGitHubSetup(t *testing.T) {
	env := testEnv(t)
	cfg := config.Config{"title": "Demo", "github_link": "https://github.com/org/demo", "maintainer": "me@example.com"}

	artifacts, err := GitHub{}.Setup(context.Background(), cfg, env)
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].Path != ReleaseWorkflow {
		t.Fatalf("artifacts = %+v", artifacts)
	}
	content := artifacts[0].Content
	for _, want := range []string{
		"# Release workflow for Demo.",
		`name: "Demo ${{ github.ref_name }}"`,
		"# Repository: https://github.com/org/demo",
		"# Maintainer: me@example.com",
		"citation.bib",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("workflow lacks %q:\n%s", want, content)
		}
	}
}

func TestWorkflowsEscapeConfigText(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"quotes", `The "Big" Corpus`},
		{"newline", "Demo\non: bogus"},
		{"backslash and colon", `C:\data: v2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t)
			cfg := config.Config{
				"title":        tt.title,
				"type":         config.TypePythonPackage,
				"package_name": "demo",
				"github_link":  "https://github.com/org/demo",
				"maintainer":   "Ada\nname: x",
			}

			var contents []string
			for _, h := range []Handler{GitHub{}, PyPI{}} {
				artifacts, err := h.Setup(context.Background(), cfg, env)
				if err != nil {
					t.Fatalf("%s Setup() error: %v", h.Name(), err)
				}
				contents = append(contents, artifacts[0].Content)
			}

			var release struct {
				Name string `yaml:"name"`
				Jobs struct {
					Release struct {
						Steps []struct {
							With map[string]any `yaml:"with"`
						} `yaml:"steps"`
					} `yaml:"release"`
				} `yaml:"jobs"`
			}
			if err := yaml.Unmarshal([]byte(contents[0]), &release); err != nil {
				t.Fatalf("release workflow is not valid YAML: %v\n%s", err, contents[0])
			}
			if release.Name != "Release" {
				t.Errorf("top-level name = %q, want Release", release.Name)
			}
			steps := release.Jobs.Release.Steps
			if len(steps) == 0 {
				t.Fatal("release job has no steps")
			}
			if got, want := steps[len(steps)-1].With["name"], tt.title+" ${{ github.ref_name }}"; got != want {
				t.Errorf("release name = %q, want %q", got, want)
			}

			var pypiWorkflow map[string]any
			if err := yaml.Unmarshal([]byte(contents[1]), &pypiWorkflow); err != nil {
				t.Fatalf("PyPI workflow is not valid YAML: %v\n%s", err, contents[1])
			}
			if pypiWorkflow["name"] != "Publish to PyPI" {
				t.Errorf("top-level name = %v", pypiWorkflow["name"])
			}
		})
	}
}

func TestRepoURLFromOrigin(t *testing.T) {
	tests := []struct {
		name string
		git  Git
		want string
	}{
		{"ssh origin", fakeGit{origin: "git@github.com:org/demo.git"}, "https://github.com/org/demo"},
		{"non-github origin", fakeGit{origin: "https://gitlab.com/org/demo.git"}, ""},
		{"no origin", fakeGit{}, ""},
		{"git error", fakeGit{err: fmt.Errorf("boom")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t)
			env.Git = tt.git
			if got := RepoURL(config.Config{}, env); got != tt.want {
				t.Errorf("RepoURL() = %q, want %q", got, tt.want)
			}
		})
	}

	env := testEnv(t)
	env.Git = fakeGit{origin: "git@github.com:org/other.git"}
	if got := RepoURL(config.Config{"github_link": "https://github.com/org/demo"}, env); got != "https://github.com/org/demo" {
		t.Errorf("github_link should win over origin, got %q", got)
	}
	if got := RepoURL(config.Config{"github_link": "javascript:alert(1)"}, env); got != "https://github.com/org/other" {
		t.Errorf("non-http github_link should fall back to origin, got %q", got)
	}
}

func TestPackageName(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		if got := PackageName(config.Config{"package_name": "my_pkg", "title": "X"}, t.TempDir()); got != "my_pkg" {
			t.Errorf("PackageName() = %q", got)
		}
	})

	t.Run("pyproject", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\nname = \"from-pyproject\"\n"), 0o644)
		if got := PackageName(config.Config{"title": "X"}, dir); got != "from-pyproject" {
			t.Errorf("PackageName() = %q", got)
		}
	})

	t.Run("poetry", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[tool.poetry]\nname = \"poetry-pkg\"\n"), 0o644)
		if got := PackageName(config.Config{"title": "X"}, dir); got != "poetry-pkg" {
			t.Errorf("PackageName() = %q", got)
		}
	})

	t.Run("title", func(t *testing.T) {
		if got := PackageName(config.Config{"title": "My_Research Tools"}, t.TempDir()); got != "my-research-tools" {
			t.Errorf("PackageName() = %q", got)
		}
	})
}

func TestPyPISetup(t *testing.T) {
	var logs strings.Builder
	env := &Env{
		Dir:    t.TempDir(),
		PyPI:   fakeIndex{names: map[string]pypi.Registration{"demo-tools": pypi.Taken}},
		Logger: log.New(&logs),
	}
	cfg := config.Config{"title": "Demo Tools", "type": "python-package"}

	artifacts, err := PyPI{}.Setup(context.Background(), cfg, env)
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].Path != PyPIWorkflow {
		t.Fatalf("artifacts = %+v", artifacts)
	}
	if !strings.Contains(artifacts[0].Content, "url: https://pypi.org/p/demo-tools") {
		t.Errorf("workflow lacks package URL:\n%s", artifacts[0].Content)
	}
	if !strings.Contains(logs.String(), "already registered") {
		t.Errorf("expected a warning for a taken name, logs: %q", logs.String())
	}

	_, err = PyPI{}.Setup(context.Background(), config.Config{"package_name": "bad name!"}, env)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid package name error = %v", err)
	}
}

func TestPyPISetupNameRegistration(t *testing.T) {
	tests := []struct {
		name     string
		reg      pypi.Registration
		err      error
		wantLog  string
		wantWarn bool
	}{
		{"available", pypi.Available, nil, "", false},
		{"owned by this repository", pypi.OwnedByRepo, nil, "already published from this repository", false},
		{"taken", pypi.Taken, nil, "another project", true},
		{"index unreachable", pypi.Taken, fmt.Errorf("network error"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs strings.Builder
			var compared string
			env := &Env{
				Dir:    t.TempDir(),
				Git:    fakeGit{origin: "git@github.com:lab/demo-tools.git"},
				PyPI:   fakeIndex{names: map[string]pypi.Registration{"demo-tools": tt.reg}, err: tt.err, repoURL: &compared},
				Logger: log.New(&logs),
			}
			if _, err := (PyPI{}).Setup(context.Background(), config.Config{"package_name": "demo-tools"}, env); err != nil {
				t.Fatalf("Setup() error: %v", err)
			}
			if compared != "https://github.com/lab/demo-tools" {
				t.Errorf("compared against %q, want the origin's https URL", compared)
			}
			out := logs.String()
			if tt.wantLog != "" && !strings.Contains(out, tt.wantLog) {
				t.Errorf("logs lack %q: %q", tt.wantLog, out)
			}
			if got := strings.Contains(out, "WARN"); got != tt.wantWarn {
				t.Errorf("warned = %v, want %v: %q", got, tt.wantWarn, out)
			}
		})
	}
}

func TestZenodoSetup(t *testing.T) {
	cfg := config.Config{"title": "Demo", "published": "2025-02-01", "doi": "10.5281/zenodo.9"}

	artifacts, err := Zenodo{}.Setup(context.Background(), cfg, testEnv(t))
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].Path != ".zenodo.json" {
		t.Fatalf("artifacts = %+v", artifacts)
	}
	if !strings.Contains(artifacts[0].Content, `"doi": "10.5281/zenodo.9"`) {
		t.Errorf(".zenodo.json lacks doi:\n%s", artifacts[0].Content)
	}
}

func TestLookup(t *testing.T) {
	if h, ok := Lookup("pypi"); !ok || h.Name() != "PyPI" {
		t.Errorf("Lookup(pypi) = %v, %v", h, ok)
	}
	if _, ok := Lookup("gitlab"); ok {
		t.Error("Lookup(gitlab) should fail")
	}
	for _, h := range Handlers() {
		if len(h.Requirements()) == 0 {
			t.Errorf("%s has no requirements", h.Name())
		}
	}
}
