package release

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/stratum-research/autoreadme/pkg/output"
)

// ChangelogFile is the changelog maintained by releases.
const ChangelogFile = "CHANGELOG.md"

// ChangelogStatus describes what UpdateChangelog did.
type ChangelogStatus int

const (
	// ChangelogSkipped means there were no changes listed for the version.
	ChangelogSkipped ChangelogStatus = iota
	// ChangelogCreated means the file did not exist and was created.
	ChangelogCreated
	// ChangelogPrepended means a new section was added to the top.
	ChangelogPrepended
	// ChangelogUnchanged means the version already had a section.
	ChangelogUnchanged
)

func (s ChangelogStatus) String() string {
	switch s {
	case ChangelogCreated:
		return "created"
	case ChangelogPrepended:
		return "prepended"
	case ChangelogUnchanged:
		return "unchanged"
	default:
		return "skipped"
	}
}

// Header returns the section header for version.
func Header(version string) string {
	return "## [" + version + "]"
}

// Entry renders the changelog section for version.
func Entry(version string, changes []string) string {
	var b strings.Builder
	b.WriteString(Header(version))
	b.WriteByte('\n')
	for _, c := range changes {
		b.WriteString("- ")
		b.WriteString(c)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// MergeChangelog computes the new changelog content. existing is the
// current file content and found reports whether the file exists.
// When the version already has a section the content is returned unchanged.
func MergeChangelog(existing string, found bool, version string, changes []string) (string, ChangelogStatus) {
	if len(changes) == 0 {
		return existing, ChangelogSkipped
	}
	entry := Entry(version, changes)
	if !found {
		return entry, ChangelogCreated
	}
	if strings.Contains(existing, Header(version)) {
		return existing, ChangelogUnchanged
	}
	return entry + existing, ChangelogPrepended
}

// UpdateChangelog merges the section for version into CHANGELOG.md under
// the writer's directory. The file is only written when its content
// changes; a dry-run writer reports the status without writing.
func UpdateChangelog(w *output.Writer, version string, changes []string) (ChangelogStatus, error) {
	path := w.Target(output.Artifact{Path: ChangelogFile})

	data, err := os.ReadFile(path)
	found := err == nil
	if err != nil && !os.IsNotExist(err) {
		return ChangelogSkipped, err
	}

	content, status := MergeChangelog(string(data), found, version, changes)
	if status == ChangelogSkipped || status == ChangelogUnchanged {
		return status, nil
	}
	if _, err := w.Write(output.Artifact{Path: ChangelogFile, Content: content}); err != nil {
		return status, err
	}
	return status, nil
}

// changelogPath is used in log output.
func changelogPath(w *output.Writer) string {
	return filepath.Clean(w.Target(output.Artifact{Path: ChangelogFile}))
}
