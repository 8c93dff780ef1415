package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the query and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. With --redis (or
// redis_addr in the config) it clears the redis prefix instead of the
// cache directory.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached query and render results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.cfg.RedisAddr != "" {
				rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.cfg.RedisAddr, Prefix: c.cfg.redisPrefix()})
				if err != nil {
					return err
				}
				defer rc.Close()
				n, err := rc.Clear(ctx)
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", n)
				printDetail("Redis: %s (prefix %s)", c.cfg.RedisAddr, c.cfg.redisPrefix())
				return nil
			}

			dir, err := c.cfg.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cfg.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
