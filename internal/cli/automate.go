package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratum-research/autoreadme/pkg/automate"
	"github.com/stratum-research/autoreadme/pkg/errors"
	"github.com/stratum-research/autoreadme/pkg/release"
)

// automateCommand creates the automate command that runs the integration
// dispatcher.
func (c *CLI) automateCommand() *cobra.Command {
	var failFast bool
	var only []string

	cmd := &cobra.Command{
		Use:   "automate",
		Short: "Set up GitHub, Zenodo and PyPI automation",
		Long: `Set up platform automation for the project.

Each integration checks whether it applies to the config:

  GitHub   inside a git repository or when github_link is set
  Zenodo   when doi or zenodo_link mentions zenodo
  PyPI     when type is python-package

--only restricts the run to the named integrations.

A failing integration is reported and the others still run, unless
--fail-fast is given. The command fails if any integration failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handlers, err := selectHandlers(only)
			if err != nil {
				return err
			}
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}

			env := &automate.Env{Dir: c.workDir(), Logger: c.Logger}
			if repo, err := release.Open(c.workDir()); err == nil {
				env.Git = repo
			} else {
				c.Logger.Debug("no git repository", "error", err)
			}
			if client, err := c.pypiClient(); err == nil {
				env.PyPI = client
			}

			d := &automate.Dispatcher{Writer: c.writer(), Handlers: handlers, FailFast: failFast}
			report, runErr := d.Run(cmd.Context(), cfg, env)
			if report != nil {
				c.printReport(report)
			}
			if runErr != nil {
				return runErr
			}
			return report.Err()
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first failing integration")
	cmd.Flags().StringSliceVar(&only, "only", nil, "run only these integrations (github, zenodo, pypi)")

	return cmd
}

// selectHandlers resolves --only names. No names selects every handler.
func selectHandlers(names []string) ([]automate.Handler, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var out []automate.Handler
	for _, name := range names {
		h, ok := automate.Lookup(strings.TrimSpace(name))
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown integration %q (want github, zenodo or pypi)", name)
		}
		out = append(out, h)
	}
	return out, nil
}

func (c *CLI) printReport(report *automate.Report) {
	for _, o := range report.Outcomes {
		switch o.Status {
		case automate.StatusApplied:
			printSuccess("%s integration configured", o.Handler)
			for _, path := range o.Written {
				printFile(path)
			}
		case automate.StatusFailed:
			printError("%s: %s", o.Handler, errors.UserMessage(o.Err))
			c.Logger.Debug("integration failed", "handler", o.Handler, "code", errors.GetCode(o.Err))
		case automate.StatusSkipped:
			printInfo("%s not applicable", StyleDim.Render(o.Handler))
		}
	}

	applied := report.Applied()
	if len(applied) == 0 {
		if len(report.Failed()) == 0 {
			printWarning("No integrations apply to this project")
		}
		return
	}

	printNewline()
	printInfo("%s", StyleTitle.Render("Next steps"))
	for _, o := range applied {
		printInfo("%s", o.Handler)
		for _, r := range o.Requirements {
			printDetail("- %s", r)
		}
	}
}
