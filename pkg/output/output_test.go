package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stratum-research/autoreadme/pkg/errors"
)

func TestWriteCreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(dir)

	path, err := w.Write(Artifact{Path: ".github/workflows/release.yml", Content: "name: Release\n"})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if want := filepath.Join(dir, ".github", "workflows", "release.yml"); path != want {
		t.Errorf("Write() path = %s, want %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "name: Release\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteOverwrites(t *testing.T) {
	w := NewWriter(t.TempDir())

	if _, err := w.Write(Artifact{Path: "README.md", Content: "old content that is longer"}); err != nil {
		t.Fatal(err)
	}
	path, err := w.Write(Artifact{Path: "README.md", Content: "new"})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}
}

func TestWriteRejectsEscapingPaths(t *testing.T) {
	w := NewWriter(t.TempDir())

	for _, p := range []string{"", "../x", "/etc/x", "a/../../x"} {
		if _, err := w.Write(Artifact{Path: p, Content: "x"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Write(%q) error = %v, want INVALID_INPUT", p, err)
		}
	}
}

func TestDryRun(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, DryRun: true}

	path, err := w.Write(Artifact{Path: "LICENSE", Content: "MIT"})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if path != filepath.Join(dir, "LICENSE") {
		t.Errorf("path = %s", path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("dry run must not write")
	}
}

func TestWriteAllStopsOnFailure(t *testing.T) {
	w := NewWriter(t.TempDir())

	written, err := w.WriteAll([]Artifact{
		{Path: "README.md", Content: "a"},
		{Path: "../escape", Content: "b"},
		{Path: "LICENSE", Content: "c"},
	})
	if err == nil {
		t.Fatal("WriteAll() should fail on invalid path")
	}
	if len(written) != 1 {
		t.Errorf("written = %v, want only README.md", written)
	}
	if _, err := os.Stat(filepath.Join(w.Dir, "LICENSE")); !os.IsNotExist(err) {
		t.Error("artifacts after the failure must not be written")
	}
}

func TestDefaultDir(t *testing.T) {
	w := NewWriter("")
	if got := w.Target(Artifact{Path: "README.md"}); got != "README.md" {
		t.Errorf("Target() = %q, want README.md", got)
	}
}
