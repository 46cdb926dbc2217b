// Package cli implements the autoreadme command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stratum-research/autoreadme/pkg/buildinfo"
	"github.com/stratum-research/autoreadme/pkg/cache"
	"github.com/stratum-research/autoreadme/pkg/config"
	"github.com/stratum-research/autoreadme/pkg/generate"
	"github.com/stratum-research/autoreadme/pkg/integrations/github"
	"github.com/stratum-research/autoreadme/pkg/integrations/pypi"
	"github.com/stratum-research/autoreadme/pkg/observability"
	"github.com/stratum-research/autoreadme/pkg/output"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "autoreadme"

	// licenseTTL is how long fetched license templates stay cached.
	licenseTTL = 7 * 24 * time.Hour

	// pypiTTL is how long PyPI metadata stays cached.
	pypiTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flags.
	dir        string
	configPath string
	dryRun     bool
	noCache    bool
}

// New creates a new CLI instance with a default logger. Outbound HTTP and
// cache events are reported to the logger at debug level.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	observability.Register(observability.NewLogHooks(c.Logger))
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "autoreadme",
		Short: "Autoreadme renders project documentation from a YAML config",
		Long: `Autoreadme reads a single YAML project description and renders README.md,
LICENSE, citation.bib and platform metadata from it. It can also scaffold
GitHub, Zenodo and PyPI automation and tag releases.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadEnv(c.workDir())
			for _, f := range loaded {
				c.Logger.Debug("loaded environment", "file", f)
			}
			return err
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", config.DefaultName, "config file path")
	flags.StringVar(&c.dir, "dir", "", "project directory (default: current directory)")
	flags.BoolVar(&c.dryRun, "dry-run", false, "show what would be written without writing")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the HTTP response cache")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.makeCommand())
	root.AddCommand(c.automateCommand())
	root.AddCommand(c.releaseCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// workDir returns the project directory, defaulting to ".".
func (c *CLI) workDir() string {
	if c.dir == "" {
		return "."
	}
	return c.dir
}

// loadConfig locates and parses the project config.
func (c *CLI) loadConfig() (config.Config, string, error) {
	cfg, path, err := config.Load(c.workDir(), c.configPath)
	if err != nil {
		return nil, "", err
	}
	c.Logger.Debug("loaded config", "path", path, "keys", len(cfg))
	return cfg, path, nil
}

// writer returns the output stage for the project directory.
func (c *CLI) writer() *output.Writer {
	return &output.Writer{Dir: c.dir, DryRun: c.dryRun}
}

// generateOptions builds generator options with a cached license client.
func (c *CLI) generateOptions(template string) (generate.Options, error) {
	backend, err := c.newCache()
	if err != nil {
		return generate.Options{}, err
	}
	return generate.Options{
		Dir:      c.workDir(),
		Template: template,
		Licenses: github.NewClient(backend, config.GitHubToken(), licenseTTL),
		Logger:   c.Logger,
	}, nil
}

// pypiClient returns a cached PyPI client.
func (c *CLI) pypiClient() (*pypi.Client, error) {
	backend, err := c.newCache()
	if err != nil {
		return nil, err
	}
	return pypi.NewClient(backend, pypiTTL), nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory: $AUTOREADME_CACHE_DIR, then the XDG
// standard (~/.cache/autoreadme/).
func cacheDir() (string, error) {
	if dir := os.Getenv(config.EnvCacheDir); dir != "" {
		return dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
