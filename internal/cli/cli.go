// Package cli implements the vischart command-line interface.
//
// # Commands
//
//   - compile: compile a chart spec into scene graph JSON
//   - render: render a chart spec to SVG, PNG, PDF or JSON (optionally on every save)
//   - inspect: browse the compiled scene graph in the terminal
//   - tree: draw the scene graph structure with Graphviz
//   - serve: run the HTTP API
//   - cache: manage the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vischart/pkg/buildinfo"
	"github.com/matzehuels/vischart/pkg/cache"
	"github.com/matzehuels/vischart/pkg/data/source"
	"github.com/matzehuels/vischart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "vischart"

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
	Config Config

	verbose    bool
	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "vischart compiles declarative chart specs into scene graphs",
		Long:          `vischart turns JSON, YAML or TOML chart specifications into a renderer-agnostic scene graph and renders it as SVG, PNG, PDF or JSON.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(cmd.Flags().Changed("config")); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default ~/.config/vischart/config.toml)")

	root.AddCommand(c.compileCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

func (c *CLI) loadConfig(explicit bool) error {
	path := c.configFile
	if path == "" {
		p, err := configPath()
		if err != nil {
			return nil
		}
		path = p
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Named data is looked up
// next to specPath unless the config names a data directory. The returned
// function releases the runner's connections.
func (c *CLI) newRunner(ctx context.Context, specPath string, noCache bool) (*pipeline.Runner, func(), error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	keyer := c.newKeyer()
	resolver, closeResolver, err := c.newResolver(ctx, store, keyer, specPath)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	runner := pipeline.NewRunner(store, keyer, resolver, c.Logger)
	return runner, func() {
		closeResolver()
		if err := runner.Close(); err != nil {
			c.Logger.Warn("close cache", "error", err)
		}
	}, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.NoCache {
		return cache.NewNullCache(), nil
	}
	if r := c.Config.Redis; r.Addr != "" {
		c.Logger.Debug("using redis cache", "addr", r.Addr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: r.Addr, Password: r.Password, DB: r.DB})
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return cacheDir()
}

// newKeyer scopes cache keys when the config sets a key prefix.
func (c *CLI) newKeyer() cache.Keyer {
	if c.Config.KeyPrefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Config.KeyPrefix)
}

// newResolver chains the configured named-data sources: files first, then
// the HTTP base URL, then MongoDB.
func (c *CLI) newResolver(ctx context.Context, store cache.Cache, keyer cache.Keyer, specPath string) (source.Resolver, func(), error) {
	dir := c.Config.DataDir
	if dir == "" && specPath != "" {
		dir = filepath.Dir(specPath)
	}
	if dir == "" {
		dir = "."
	}
	resolvers := []source.Resolver{source.NewFileResolver(dir)}
	closer := func() {}

	if c.Config.DataURL != "" {
		hr, err := source.NewHTTPResolver(c.Config.DataURL, store, nil)
		if err != nil {
			return nil, nil, err
		}
		resolvers = append(resolvers, hr.WithKeyer(keyer))
	}
	if m := c.Config.Mongo; m.URI != "" {
		mr, err := source.ConnectMongo(ctx, m.URI, m.Database)
		if err != nil {
			return nil, nil, err
		}
		resolvers = append(resolvers, mr)
		closer = func() {
			if err := mr.Close(context.Background()); err != nil {
				c.Logger.Warn("close mongo", "error", err)
			}
		}
	}
	return source.Chain(resolvers...), closer, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/vischart/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice. An
// empty string falls back to the config file, then to svg.
func (c *CLI) parseFormats(s string) []string {
	if s == "" {
		if len(c.Config.Formats) > 0 {
			return c.Config.Formats
		}
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
