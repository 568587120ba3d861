package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/pkg/cache"
	"github.com/matzehuels/arrange/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the arrangement cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached arrangements",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ch := c.newCache(cmd.Context(), false)
			defer ch.Close()

			var (
				count int
				err   error
				where string
			)
			switch ch := ch.(type) {
			case *cache.FileCache:
				count, err = ch.Clear()
				where = ch.Dir()
			case *cache.RedisCache:
				count, err = ch.Clear(cmd.Context())
				where = c.Config.Cache.RedisAddr
			case *cache.NullCache:
				printInfo(out, "Caching is disabled (%s)", ch.Reason())
				return nil
			}
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if count == 0 {
				printInfo(out, "Cache is empty")
			} else {
				printSuccess(out, "Cleared %d cached entries", count)
			}
			printDetail(out, "Location: %s", where)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached arrangements are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch c.Config.Cache.Backend {
			case config.BackendRedis:
				fmt.Fprintf(out, "redis://%s\n", c.Config.Cache.RedisAddr)
			case config.BackendNone:
				printInfo(out, "Caching is disabled")
			default:
				dir, err := c.Config.CacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(out, dir)
			}
			return nil
		},
	}
}
