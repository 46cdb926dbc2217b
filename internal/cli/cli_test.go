package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stratum-research/autoreadme/pkg/cache"
	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/errors"
	"github.com/stratum-research/autoreadme/pkg/generate"
	"github.com/stratum-research/autoreadme/pkg/integrations/github"
	"github.com/stratum-research/autoreadme/pkg/integrations/pypi"
)

const projectConfig = `title: "Sample Data"
version: "1.0"
published: "2024-03-15"
tagline: "A sample dataset"
description: "Sample description."
doi: "10.5281/zenodo.42"
type: dataset
license: MIT
contributors:
  - name: "Ada Lovelace"
    affiliation: "Analytical Engines"
    email: "ada@example.com"
`

// captureOutput redirects status output to a buffer for the test's duration.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

// project creates a project directory with config/config.yaml.
func project(t *testing.T, cfg string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("AUTOREADME_CACHE_DIR", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func exists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

func TestMakeReadme(t *testing.T) {
	captureOutput(t)
	dir := project(t, projectConfig)

	if _, err := execute(t, "make", "readme", "--dir", dir); err != nil {
		t.Fatalf("make readme: %v", err)
	}

	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(readme), "Sample Data") {
		t.Errorf("README.md lacks title:\n%s", readme)
	}
	license, err := os.ReadFile(filepath.Join(dir, "LICENSE"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(license), "Copyright (c) 2024 Ada Lovelace") {
		t.Errorf("LICENSE lacks copyright line:\n%s", license)
	}
	if exists(t, filepath.Join(dir, "citation.bib")) {
		t.Error("make readme must not write citation.bib")
	}
}

func TestMakeAllWithoutDOI(t *testing.T) {
	captureOutput(t)
	dir := project(t, strings.Replace(projectConfig, "doi: \"10.5281/zenodo.42\"\n", "", 1))

	if _, err := execute(t, "make", "all", "--dir", dir); err != nil {
		t.Fatalf("make all: %v", err)
	}
	for _, name := range []string{"README.md", "LICENSE", "citation.bib"} {
		if !exists(t, filepath.Join(dir, name)) {
			t.Errorf("%s not generated", name)
		}
	}
}

func TestMakeAllContinuesPastFailure(t *testing.T) {
	out := captureOutput(t)
	dir := project(t, projectConfig)

	_, err := execute(t, "make", "all", "--dir", dir, "--template", "missing.tmpl")
	if err != nil {
		t.Fatalf("make all should succeed when some artifacts do: %v", err)
	}
	if exists(t, filepath.Join(dir, "README.md")) {
		t.Error("README.md should have failed")
	}
	if !exists(t, filepath.Join(dir, "LICENSE")) || !exists(t, filepath.Join(dir, "citation.bib")) {
		t.Error("remaining artifacts should be generated")
	}
	if !strings.Contains(out.String(), "README.md") {
		t.Errorf("failure not reported: %q", out.String())
	}
}

func TestMakeReadmeMissingTemplate(t *testing.T) {
	captureOutput(t)
	dir := project(t, projectConfig)

	_, err := execute(t, "make", "readme", "--dir", dir, "--template", "missing.tmpl")
	if !errors.Is(err, errors.ErrCodeTemplateNotFound) {
		t.Fatalf("error = %v, want TEMPLATE_NOT_FOUND", err)
	}
	if exists(t, filepath.Join(dir, "LICENSE")) {
		t.Error("nothing should be written when make readme fails")
	}
}

func TestMakeConfigNotFound(t *testing.T) {
	captureOutput(t)

	_, err := execute(t, "make", "readme", "--dir", t.TempDir())
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Fatalf("error = %v, want CONFIG_NOT_FOUND", err)
	}
}

func TestMakeMetadata(t *testing.T) {
	captureOutput(t)
	dir := project(t, projectConfig)

	if _, err := execute(t, "make", "metadata", "--dir", dir); err != nil {
		t.Fatalf("make metadata: %v", err)
	}
	for _, name := range []string{"dataset_card.json", ".zenodo.json"} {
		if !exists(t, filepath.Join(dir, name)) {
			t.Errorf("%s not generated", name)
		}
	}
}

func TestMakeDryRun(t *testing.T) {
	out := captureOutput(t)
	dir := project(t, projectConfig)

	if _, err := execute(t, "make", "all", "--dir", dir, "--dry-run"); err != nil {
		t.Fatalf("make all --dry-run: %v", err)
	}
	if exists(t, filepath.Join(dir, "README.md")) {
		t.Error("dry run must not write")
	}
	if !strings.Contains(out.String(), "Would write") {
		t.Errorf("dry run output = %q", out.String())
	}
}

type failingGenerator string

func (f failingGenerator) Name() string { return string(f) }
func (f failingGenerator) Generate(context.Context, config.Config) (string, error) {
	return "", fmt.Errorf("%s failed", f)
}

func TestGenerateTolerantAllFailed(t *testing.T) {
	captureOutput(t)
	c := New(io.Discard, LogInfo)
	c.dir = t.TempDir()

	gens := []generate.Generator{failingGenerator("a.md"), failingGenerator("b.md")}
	err := c.generateTolerant(context.Background(), gens, config.Config{})
	if err == nil || !strings.Contains(err.Error(), "all 2 artifacts failed") {
		t.Errorf("generateTolerant() error = %v", err)
	}

	gens = append(gens, generate.Citation{})
	cfg := config.Config{"title": "T", "tagline": "x", "version": "1", "published": "2024-01-01"}
	if err := c.generateTolerant(context.Background(), gens, cfg); err != nil {
		t.Errorf("one success should be enough, got %v", err)
	}
}

func TestInit(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config", "config.yaml")

	if _, err := execute(t, "init", "--dir", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !exists(t, filepath.Join(dir, "config", "assets", "README.md")) {
		t.Error("assets README not written")
	}
	cfg, _, err := config.Load(dir, "")
	if err != nil {
		t.Fatalf("scaffolded config does not load: %v", err)
	}
	if cfg.String("type") != config.TypeDataset {
		t.Errorf("type = %q", cfg.String("type"))
	}

	if err := os.WriteFile(cfgPath, []byte("title: mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "init", "--dir", dir); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if data, _ := os.ReadFile(cfgPath); string(data) != "title: mine\n" {
		t.Error("init without --force must keep the existing config")
	}

	if _, err := execute(t, "init", "--dir", dir, "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	if data, _ := os.ReadFile(cfgPath); string(data) == "title: mine\n" {
		t.Error("init --force must overwrite the config")
	}
}

func TestAutomate(t *testing.T) {
	out := captureOutput(t)
	dir := project(t, projectConfig)

	if _, err := execute(t, "automate", "--dir", dir); err != nil {
		t.Fatalf("automate: %v", err)
	}
	if !exists(t, filepath.Join(dir, ".zenodo.json")) {
		t.Error(".zenodo.json not written")
	}
	if exists(t, filepath.Join(dir, ".github")) {
		t.Error("GitHub integration should not apply without a repository or github_link")
	}
	if !strings.Contains(out.String(), "Zenodo integration configured") || !strings.Contains(out.String(), "Next steps") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestAutomateOnly(t *testing.T) {
	captureOutput(t)
	cfg := projectConfig + "github_link: https://github.com/org/sample\n"

	dir := project(t, cfg)
	if _, err := execute(t, "automate", "--dir", dir, "--only", "Zenodo"); err != nil {
		t.Fatalf("automate --only Zenodo: %v", err)
	}
	if !exists(t, filepath.Join(dir, ".zenodo.json")) {
		t.Error(".zenodo.json not written")
	}
	if exists(t, filepath.Join(dir, ".github")) {
		t.Error("GitHub integration ran despite --only")
	}

	dir = project(t, cfg)
	if _, err := execute(t, "automate", "--dir", dir, "--only", "github,zenodo"); err != nil {
		t.Fatalf("automate --only github,zenodo: %v", err)
	}
	if !exists(t, filepath.Join(dir, ".github", "workflows", "release.yml")) {
		t.Error("release workflow not written")
	}

	_, err := execute(t, "automate", "--dir", dir, "--only", "gitlab")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown integration error = %v, want INVALID_INPUT", err)
	}
}

func TestAutomateFailureExitsNonZero(t *testing.T) {
	captureOutput(t)
	// Zenodo applies but .zenodo.json needs published.
	dir := project(t, "title: X\ndoi: 10.5281/zenodo.1\n")

	_, err := execute(t, "automate", "--dir", dir)
	if !errors.Is(err, errors.ErrCodeIntegrationFailed) {
		t.Fatalf("error = %v, want INTEGRATION_FAILED", err)
	}
}

func TestReleaseOutsideRepository(t *testing.T) {
	captureOutput(t)
	dir := project(t, projectConfig)

	_, err := execute(t, "release", "--dir", dir)
	if !errors.Is(err, errors.ErrCodeGit) {
		t.Fatalf("error = %v, want GIT_ERROR", err)
	}
}

func TestCachePath(t *testing.T) {
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != os.Getenv("AUTOREADME_CACHE_DIR") {
		t.Errorf("cache path = %q", out)
	}
}

func TestCacheListAndClearSource(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = fc.Set(ctx, github.CachePrefix+"mit", []byte(`{"body":"MIT"}`), time.Hour)
	_ = fc.Set(ctx, pypi.CachePrefix+"autoreadme", []byte(`{}`), time.Hour)

	run := func(args ...string) error {
		t.Setenv("AUTOREADME_CACHE_DIR", dir)
		root := New(io.Discard, LogInfo).RootCommand()
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		root.SetArgs(args)
		return root.ExecuteContext(ctx)
	}

	out := captureOutput(t)
	if err := run("cache", "list"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"github", "pypi", "1 entries"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("cache list output lacks %q:\n%s", want, out)
		}
	}

	if err := run("cache", "clear", "--source", "github"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := fc.Get(ctx, github.CachePrefix+"mit"); hit {
		t.Error("github entry survived clear --source github")
	}
	if _, hit, _ := fc.Get(ctx, pypi.CachePrefix+"autoreadme"); !hit {
		t.Error("pypi entry should survive clear --source github")
	}

	if err := run("cache", "clear", "--source", "npm"); err == nil {
		t.Error("unknown source should be rejected")
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "autoreadme") {
		t.Error("completion script should mention the binary name")
	}
}
