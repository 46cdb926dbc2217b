// Package output is the single stage that touches the file system on behalf
// of generators and integrations.
//
// Generators and integration handlers return [Artifact] values; callers hand
// them to a [Writer]. Writes overwrite unconditionally and are not atomic.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stratum-research/autoreadme/pkg/errors"
)

// Artifact is one output file: a path relative to the output directory and
// its full content.
type Artifact struct {
	Path    string
	Content string
}

// Writer writes artifacts under Dir. An empty Dir means the current
// directory.
type Writer struct {
	Dir string

	// DryRun reports the target paths without writing anything.
	DryRun bool
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Target returns the absolute-or-relative path an artifact would be written to.
func (w *Writer) Target(a Artifact) string {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filepath.FromSlash(a.Path))
}

// Write writes a single artifact, creating missing parent directories.
// It returns the path written.
func (w *Writer) Write(a Artifact) (string, error) {
	if err := errors.ValidateArtifactPath(a.Path); err != nil {
		return "", err
	}
	path := w.Target(a)
	if w.DryRun {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", a.Path, err)
	}
	if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", a.Path, err)
	}
	return path, nil
}

// WriteAll writes artifacts in order and stops at the first failure.
// It returns the paths written before the failure.
func (w *Writer) WriteAll(artifacts []Artifact) ([]string, error) {
	written := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path, err := w.Write(a)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
