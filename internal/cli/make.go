package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/errors"
	"github.com/stratum-research/autoreadme/pkg/generate"
	"github.com/stratum-research/autoreadme/pkg/output"
)

// makeCommand creates the make command and its artifact subcommands.
func (c *CLI) makeCommand() *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "make",
		Short: "Generate documentation artifacts from the config",
		Long: `Generate documentation artifacts from the project config.

  make readme     README.md and LICENSE
  make all        README.md, LICENSE and citation.bib
  make citation   citation.bib
  make license    LICENSE
  make metadata   dataset_card.json and .zenodo.json`,
	}
	cmd.PersistentFlags().StringVar(&template, "template", "", "README template path (default: templates/readme.md.tmpl or built-in)")

	cmd.AddCommand(c.makeSetCommand("readme", "Generate README.md and LICENSE", &template,
		func(o generate.Options) []generate.Generator { return generate.ReadmeSet(o) }))
	cmd.AddCommand(c.makeAllCommand(&template))
	cmd.AddCommand(c.makeSetCommand("citation", "Generate citation.bib", &template,
		func(generate.Options) []generate.Generator { return []generate.Generator{generate.Citation{}} }))
	cmd.AddCommand(c.makeSetCommand("license", "Generate LICENSE", &template,
		func(o generate.Options) []generate.Generator { return []generate.Generator{generate.NewLicense(o)} }))
	cmd.AddCommand(c.makeSetCommand("metadata", "Generate dataset_card.json and .zenodo.json", &template,
		func(generate.Options) []generate.Generator { return generate.MetadataSet() }))

	return cmd
}

// makeSetCommand builds a subcommand that stops at the first failing artifact.
func (c *CLI) makeSetCommand(use, short string, template *string, set func(generate.Options) []generate.Generator) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := c.generateOptions(*template)
			if err != nil {
				return err
			}
			return c.generateStrict(cmd.Context(), set(opts), cfg)
		},
	}
}

// makeAllCommand builds `make all`, which continues past failing artifacts.
func (c *CLI) makeAllCommand(template *string) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Generate README.md, LICENSE and citation.bib",
		Long: `Generate README.md, LICENSE and citation.bib.

A failing artifact is reported and the remaining ones are still generated;
the command fails only if every artifact failed. With --watch the artifacts
are regenerated whenever the config file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.generateOptions(*template)
			if err != nil {
				return err
			}

			run := func() error {
				cfg, _, err := c.loadConfig()
				if err != nil {
					return err
				}
				return c.generateTolerant(ctx, generate.AllSet(opts), cfg)
			}

			if !watch {
				return run()
			}

			if err := run(); err != nil {
				printError("%s", errors.UserMessage(err))
			}
			path, err := config.Locate(c.workDir(), c.configPath)
			if err != nil {
				return err
			}
			printInfo("Watching %s (ctrl+c to stop)", path)
			return watchFile(ctx, path, watchDebounce, c.Logger, func() {
				printNewline()
				printInfo("Config changed, regenerating")
				if err := run(); err != nil {
					printError("%s", errors.UserMessage(err))
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when the config file changes")

	return cmd
}

// generateStrict renders each artifact and writes them only if all succeed.
// It returns the first error.
func (c *CLI) generateStrict(ctx context.Context, gens []generate.Generator, cfg config.Config) error {
	sw := startStopwatch(c.Logger)

	sp := startSpinner(ctx, "Rendering artifacts")
	artifacts := make([]output.Artifact, 0, len(gens))
	for i, g := range gens {
		sp.Update("Rendering %s (%d/%d)", g.Name(), i+1, len(gens))
		a, err := generate.Artifact(ctx, g, cfg)
		if err != nil {
			sp.Stop()
			return fmt.Errorf("%s: %w", g.Name(), err)
		}
		artifacts = append(artifacts, a)
	}
	sp.Stop()

	written, err := c.writer().WriteAll(artifacts)
	for _, path := range written {
		c.reportWritten(path)
	}
	if err != nil {
		return err
	}
	sw.done("Generated %d artifacts", len(gens))
	return nil
}

// generateTolerant renders every artifact and reports failures individually.
// It fails only when no artifact could be produced.
func (c *CLI) generateTolerant(ctx context.Context, gens []generate.Generator, cfg config.Config) error {
	sw := startStopwatch(c.Logger)
	w := c.writer()

	sp := startSpinner(ctx, fmt.Sprintf("Rendering %d artifacts", len(gens)))
	results := generate.Run(ctx, gens, cfg)
	interrupted := sp.Interrupted()
	sp.Stop()
	if interrupted {
		return ctx.Err()
	}

	var failed int
	var last error
	for _, r := range results {
		err := r.Err
		if err == nil {
			var path string
			if path, err = w.Write(r.Artifact); err == nil {
				c.reportWritten(path)
				continue
			}
		}
		failed++
		last = err
		printError("%s: %s", r.Artifact.Path, errors.UserMessage(err))
	}
	sw.done("Generated %d of %d artifacts", len(gens)-failed, len(gens))

	if failed > 0 && failed == len(gens) {
		return fmt.Errorf("all %d artifacts failed: %w", failed, last)
	}
	return nil
}

func (c *CLI) reportWritten(path string) {
	if c.dryRun {
		printInfo("Would write %s", path)
		return
	}
	printSuccess("Generated %s", path)
}
