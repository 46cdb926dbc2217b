package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratum-research/autoreadme/pkg/cache"
	"github.com/stratum-research/autoreadme/pkg/integrations/github"
	"github.com/stratum-research/autoreadme/pkg/integrations/pypi"
)

// Sources a cache entry can belong to, keyed by --source value.
var cacheSources = map[string]string{
	"github": github.CachePrefix,
	"pypi":   pypi.CachePrefix,
}

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear cached license texts and PyPI lookups",
	}
	cmd.AddCommand(c.cacheListCommand(), c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

// openCache opens the cache directory, or returns nil if it was never created.
func openCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cacheListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Summarize cached entries per source",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := openCache()
			if err != nil {
				return err
			}
			if fc == nil {
				printInfo("Cache is empty")
				return nil
			}
			entries, err := fc.Entries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Cache is empty")
				return nil
			}

			type tally struct{ count, expired, bytes int }
			bySource := map[string]*tally{}
			for _, e := range entries {
				src := strings.TrimSuffix(e.Source(), ":")
				if src == "" {
					src = "other"
				}
				t := bySource[src]
				if t == nil {
					t = &tally{}
					bySource[src] = t
				}
				t.count++
				t.bytes += e.Size
				if e.Expired {
					t.expired++
				}
			}
			names := make([]string, 0, len(bySource))
			for name := range bySource {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				t := bySource[name]
				printKeyValue(name, fmt.Sprintf("%d entries, %d expired, %d bytes", t.count, t.expired, t.bytes))
			}
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var source string
	var expired bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached entries",
		Long: `Remove cached entries.

By default everything is removed. --source limits the removal to one
upstream (github or pypi); --expired removes only stale entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefix string
			if source != "" {
				p, ok := cacheSources[source]
				if !ok {
					return fmt.Errorf("unknown cache source %q (want github or pypi)", source)
				}
				prefix = p
			}

			fc, err := openCache()
			if err != nil {
				return err
			}
			if fc == nil {
				printInfo("Cache is empty")
				return nil
			}

			var n int
			switch {
			case expired:
				n, err = fc.Prune()
			case prefix != "":
				n, err = fc.ClearSource(prefix)
			default:
				n, err = fc.Clear()
			}
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "only clear entries from this source (github, pypi)")
	cmd.Flags().BoolVar(&expired, "expired", false, "only clear expired entries")
	cmd.MarkFlagsMutuallyExclusive("source", "expired")
	return cmd
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
