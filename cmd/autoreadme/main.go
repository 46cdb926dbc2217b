// Command autoreadme renders a research project's README, LICENSE, citation
// and archive metadata from config/config.yaml, and wires up its GitHub,
// Zenodo and PyPI release automation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stratum-research/autoreadme/internal/cli"
	apperrors "github.com/stratum-research/autoreadme/pkg/errors"
)

// exitInterrupted follows the shell convention of 128+SIGINT.
const exitInterrupted = 130

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		os.Exit(exitInterrupted)
	default:
		fmt.Fprintln(os.Stderr, "Error:", apperrors.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose, quiet bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log HTTP requests, cache decisions and timings")
	flags.BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// The level must be set before the root pre-run loads .env files.
	loadEnv := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c.SetLogLevel(logLevel(verbose, quiet))
		if loadEnv != nil {
			return loadEnv(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

func logLevel(verbose, quiet bool) log.Level {
	switch {
	case verbose:
		return cli.LogDebug
	case quiet:
		return log.WarnLevel
	default:
		return cli.LogInfo
	}
}
