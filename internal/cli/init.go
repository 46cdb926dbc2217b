package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/generate"
	"github.com/stratum-research/autoreadme/pkg/output"
)

// Paths written by init, relative to the project directory.
var (
	initConfigPath = filepath.ToSlash(filepath.Join(config.DefaultDir, config.DefaultName))
	initAssetsPath = config.DefaultDir + "/assets/README.md"
)

var projectTypeHints = map[string]string{
	config.TypeDataset:       "dataset card, Zenodo archive",
	config.TypePythonPackage: "PyPI publish workflow",
	config.TypeResearch:      "citation and Zenodo archive",
}

func licenseHints() map[string]string {
	hints := make(map[string]string, len(generate.SupportedLicenses))
	for _, id := range generate.SupportedLicenses {
		if generate.LicenseBundled(id) {
			hints[id] = "bundled"
		} else {
			hints[id] = "fetched from GitHub"
		}
	}
	return hints
}

// initCommand creates the init command that scaffolds a sample config.
func (c *CLI) initCommand() *cobra.Command {
	var (
		force       bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample config and assets folder",
		Long: `Create config/config.yaml with sample values and config/assets/ for images.

An existing config is left untouched unless --force is given. With
--interactive the project type and license are chosen from a list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.SampleOptions{}
			if interactive {
				typ, ok, err := pick("Project type", config.ProjectTypes, config.TypeDataset, projectTypeHints)
				if err != nil {
					return err
				}
				if !ok {
					printInfo("Cancelled")
					return nil
				}
				license, ok, err := pick("License", generate.SupportedLicenses, generate.DefaultLicense, licenseHints())
				if err != nil {
					return err
				}
				if !ok {
					printInfo("Cancelled")
					return nil
				}
				opts = config.SampleOptions{Type: typ, License: license}
			}
			return c.runInit(opts, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose project type and license interactively")

	return cmd
}

func (c *CLI) runInit(opts config.SampleOptions, force bool) error {
	w := c.writer()
	artifacts := []output.Artifact{
		{Path: initConfigPath, Content: config.Sample(opts)},
		{Path: initAssetsPath, Content: config.AssetsReadme},
	}

	for _, a := range artifacts {
		target := w.Target(a)
		if _, err := os.Stat(target); err == nil && !force {
			printWarning("%s already exists, skipping (use --force to overwrite)", target)
			continue
		}
		path, err := w.Write(a)
		if err != nil {
			return err
		}
		c.reportWritten(path)
	}

	printNewline()
	printNextStep("Edit the config, then run", "autoreadme make all")
	return nil
}
