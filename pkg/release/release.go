// Package release tags a project version in git and records its changes
// in CHANGELOG.md.
//
// A release reads `version` and `changelog[version]` from the config:
//
//  1. the tag v<version> is looked up; if it exists nothing else happens
//  2. the config file must have no uncommitted changes
//  3. a lightweight tag is created at HEAD and optionally pushed to origin
//  4. CHANGELOG.md gets a section for the version unless it already has one
//
// Pushing the tag is what triggers the release workflow written by
// `autoreadme automate`.
package release

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/errors"
	"github.com/stratum-research/autoreadme/pkg/output"
)

// Options configures a release.
type Options struct {
	// Dir is the project directory. CHANGELOG.md is written here.
	Dir string

	// ConfigPath is the config file that must be committed.
	ConfigPath string

	// Push pushes the tag to origin after creating it.
	Push bool

	// Token authenticates the push over HTTPS.
	Token string

	// DryRun reports what would happen without tagging or writing.
	DryRun bool

	// Logger receives progress output. Nil uses log.Default().
	Logger *log.Logger
}

// Result summarizes a release.
type Result struct {
	Tag       string
	Existing  bool
	Created   bool
	Pushed    bool
	Changelog ChangelogStatus
}

// TagName returns the tag for version.
func TagName(version string) string {
	return "v" + version
}

// Run performs the release described by cfg.
func Run(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	version, err := cfg.Require("version")
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateVersion(version); err != nil {
		return nil, err
	}
	res := &Result{Tag: TagName(version)}

	repo, err := Open(opts.Dir)
	if err != nil {
		return nil, err
	}

	exists, err := repo.TagExists(res.Tag)
	if err != nil {
		return nil, err
	}
	if exists {
		res.Existing = true
		logger.Info("tag already exists, nothing to release", "tag", res.Tag)
		return res, nil
	}

	if opts.ConfigPath != "" {
		clean, err := repo.IsClean(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		if !clean {
			return nil, errors.New(errors.ErrCodeGit,
				"%s has uncommitted changes; commit them before releasing", opts.ConfigPath)
		}
	}

	w := &output.Writer{Dir: opts.Dir, DryRun: opts.DryRun}
	if opts.DryRun {
		logger.Info("dry run: would create tag", "tag", res.Tag, "push", opts.Push)
		res.Changelog, err = UpdateChangelog(w, version, cfg.Changes(version))
		return res, err
	}

	hash, err := repo.CreateTag(res.Tag)
	if err != nil {
		return nil, err
	}
	res.Created = true
	logger.Debug("created tag", "tag", res.Tag, "commit", hash.String()[:7])

	if opts.Push {
		if err := repo.PushTag(ctx, res.Tag, opts.Token); err != nil {
			return res, err
		}
		res.Pushed = true
		logger.Debug("pushed tag", "tag", res.Tag, "remote", DefaultRemote)
	}

	status, err := UpdateChangelog(w, version, cfg.Changes(version))
	if err != nil {
		logger.Warn("could not update changelog", "path", changelogPath(w), "error", err)
	}
	res.Changelog = status
	return res, nil
}
