// Package cli implements the dockgrid command-line interface.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dockgrid/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "dockgrid"

	// cacheScope prefixes cache keys so results of incompatible releases
	// never collide.
	cacheScope = "v1:"

	// resultTTL bounds how long cached results are kept.
	resultTTL = 30 * 24 * time.Hour
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
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	v, _, _ := buildVersion()
	root := &cobra.Command{
		Use:   appName,
		Short: "Dockgrid lays out items in adaptive 2D containers",
		Long: `Dockgrid arranges items into grids inside containers on a resizable surface,
lets them be dragged between containers and fits their labels to the space
they get.`,
		Version:       v,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(versionTemplate())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.fitCommand())
	root.AddCommand(c.packCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache returns the on-disk result cache reporting to the CLI logger, or
// a NullCache when caching is disabled or no cache directory is available.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NullCache{}, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Debug("caching disabled", "err", err)
		return cache.NullCache{}, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.NewInstrumented(fc, logHooks{c.Logger}), nil
}

// newKeyer returns the keyer for cached results.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), cacheScope)
}
