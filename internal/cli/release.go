package cli

import (
	"github.com/spf13/cobra"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/release"
)

// releaseCommand creates the release command that tags the configured version.
func (c *CLI) releaseCommand() *cobra.Command {
	var push bool

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Tag the configured version and update CHANGELOG.md",
		Long: `Create the tag v<version> for the version in the config and add the
version's changelog entries to CHANGELOG.md.

Nothing happens when the tag already exists. The config file must be
committed. With --push the tag is pushed to origin, authenticating with
GITHUB_TOKEN when it is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := c.loadConfig()
			if err != nil {
				return err
			}

			res, err := release.Run(cmd.Context(), cfg, release.Options{
				Dir:        c.workDir(),
				ConfigPath: path,
				Push:       push,
				Token:      config.GitHubToken(),
				DryRun:     c.dryRun,
				Logger:     c.Logger,
			})
			if err != nil {
				return err
			}
			printRelease(res, c.dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&push, "push", false, "push the tag to origin")

	return cmd
}

func printRelease(res *release.Result, dryRun bool) {
	switch {
	case res.Existing:
		printInfo("Tag %s already exists", res.Tag)
		return
	case dryRun:
		printInfo("Would create tag %s", res.Tag)
	case res.Created:
		printSuccess("Created tag %s", res.Tag)
	}
	if res.Pushed {
		printSuccess("Pushed %s to %s", res.Tag, release.DefaultRemote)
	}
	printKeyValue("Changelog", res.Changelog.String())
}
