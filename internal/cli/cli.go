// Package cli implements the covertower command-line interface.
//
// The commands enumerate the covers of a finitely presented group, print
// the relation schedule the search runs on, render Schreier graphs, browse
// results interactively, print the permutation tables, and serve the
// enumeration over HTTP. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - enumerate: List the covers of a presentation at one or more degrees
//   - schedule: Show the relation schedule the search evaluates
//   - render: Draw one cover as DOT, SVG, PDF or PNG
//   - browse: Page through covers interactively
//   - tables: Print conjugacy-minimal permutations and their automorphisms
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// registers logging observability hooks.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/covertower/pkg/buildinfo"
	"github.com/matzehuels/covertower/pkg/cache"
	"github.com/matzehuels/covertower/pkg/errors"
	"github.com/matzehuels/covertower/pkg/group"
	"github.com/matzehuels/covertower/pkg/observability"
	"github.com/matzehuels/covertower/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "covertower"

	// envRedisURL selects the Redis cache backend when set.
	envRedisURL = "COVERTOWER_REDIS_URL"
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

	// Config is loaded before any command runs.
	Config Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level. At debug level the logger also
// receives the observability events of the pipeline.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetEnumerationHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   appName,
		Short: "Covertower enumerates finite covers of finitely presented groups",
		Long: `Covertower enumerates the transitive permutation representations of a
finitely presented group up to conjugacy, and gives a presentation of the
corresponding finite-index subgroup for each of them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/covertower/config.toml)")

	// Register all subcommands
	root.AddCommand(c.enumerateCommand())
	root.AddCommand(c.scheduleCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.tablesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// newCache opens the configured cache backend. A file cache without a
// usable directory falls back to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	if cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory", "err", err)
			return cache.NewNullCache(), nil
		}
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/covertower/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/covertower/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// inputOptions fills the load options from a command's arguments: either a
// presentation given inline or a file named with --file. File paths are made
// absolute so relative parents are accepted.
func inputOptions(args []string, file string) (pipeline.Options, error) {
	var opts pipeline.Options
	switch {
	case file != "" && len(args) > 0:
		return opts, errUsage("give either a presentation or --file, not both")
	case file != "":
		abs, err := filepath.Abs(file)
		if err != nil {
			return opts, err
		}
		opts.Path = abs
	case len(args) == 1:
		opts.Presentation = args[0]
	default:
		return opts, errUsage("a presentation such as \"<a, b | a^2, b^3>\" or --file is required")
	}
	return opts, nil
}

// loadPresentation loads the presentation named by a command's arguments.
func loadPresentation(args []string, file string) (*group.Presentation, error) {
	opts, err := inputOptions(args, file)
	if err != nil {
		return nil, err
	}
	return pipeline.LoadPresentation(opts)
}

// errUsage reports a malformed command line.
func errUsage(msg string) error {
	return errors.New(errors.ErrCodeInvalidInput, "%s", msg)
}
