// Package cli implements the arrange command-line interface.
//
// Every command reads a graph snapshot (see pkg/graph for the JSON format),
// runs one or more arrangement steps and either prints a summary or writes
// the arranged snapshot back out.
//
// # Commands
//
//   - components: list the taxa of a graph
//   - reach: weighted distances from a seed vertex
//   - declutter: remove overlaps between vertex disks
//   - center: move the centroid to a target position
//   - run: several steps in one pass through the pipeline runner
//   - cache, config, completion: housekeeping
//
// # Configuration
//
// Defaults come from arrange.toml (see pkg/config); flags given on the
// command line win over the file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/buildinfo"
	"github.com/matzehuels/arrange/pkg/cache"
	"github.com/matzehuels/arrange/pkg/config"
	"github.com/matzehuels/arrange/pkg/pipeline"
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
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          config.AppName,
		Short:        "Arrange lays out graph vertices in space",
		Long:         `Arrange partitions graphs into components, measures weighted reachability and pushes overlapping vertices apart while keeping the layout recognisable.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/arrange/arrange.toml)")

	root.AddCommand(c.componentsCommand())
	root.AddCommand(c.reachCommand())
	root.AddCommand(c.declutterCommand())
	root.AddCommand(c.centerCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache. The
// caller closes the returned cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, cache.Cache) {
	ch := c.newCache(ctx, noCache)
	r := pipeline.NewRunner(ch, nil, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r, ch
}

// newCache opens the configured backend. An unusable backend degrades to a
// NullCache with a warning; caching never fails a command.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewDisabledCache("--no-cache")
	}
	switch c.Config.Cache.Backend {
	case config.BackendRedis:
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		rc, err := cache.NewRedisCache(dialCtx, cache.RedisConfig{Addr: c.Config.Cache.RedisAddr})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "error", err)
			return cache.NewDisabledCache("redis unreachable at " + c.Config.Cache.RedisAddr)
		}
		return rc
	case config.BackendFile:
		dir, err := c.Config.CacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewDisabledCache("no cache directory")
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "error", err)
			return cache.NewDisabledCache("cannot open " + dir)
		}
		return fc
	default:
		return cache.NewDisabledCache("backend = " + c.Config.Cache.Backend)
	}
}
