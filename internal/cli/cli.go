package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/pkg/buildinfo"
	"github.com/matzehuels/viewstack/pkg/cache"
	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/query"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "viewstack"

	// defaultRedisPrefix scopes cache keys when no prefix is configured.
	defaultRedisPrefix = appName + ":"
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

	configPath string
	noCache    bool
	redisAddr  string
	cfg        Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Debug level also reports callers.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Viewstack composes, queries and renders dimensioned view trees",
		Long: `Viewstack loads view trees (elements, keyed maps and composites) from JSON or
TOML documents, narrows them with dimension constraints and renders the
result as text, tables or node-link diagrams.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/viewstack/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable result caching")
	flags.StringVar(&c.redisAddr, "redis", "", "cache in redis at host:port instead of on disk")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.selectCommand())
	root.AddCommand(c.dimsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and lets explicitly set flags override it.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("no-cache") {
		cfg.NoCache = c.noCache
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = c.redisAddr
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", cfg.path, "cache_dir", cfg.CacheDir, "redis", cfg.RedisAddr)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a query runner backed by the configured cache. The
// caller must close the returned cache.
func (c *CLI) newRunner(ctx context.Context) (*query.Runner, cache.Cache, error) {
	store, keyer, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	r := query.NewRunner(store, keyer, loggerFromContext(ctx))
	if c.cfg.CacheTTL.Duration > 0 {
		r.TTL = c.cfg.CacheTTL.Duration
	}
	return r, store, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	if c.cfg.NoCache {
		return cache.NewNullCache(), nil, nil
	}
	if c.cfg.RedisAddr != "" {
		prefix := c.cfg.redisPrefix()
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.cfg.RedisAddr, Prefix: prefix})
		if err != nil {
			return nil, nil, err
		}
		return rc, cache.NewScopedKeyer(nil, buildinfo.Version+":"), nil
	}
	dir, err := c.cfg.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/viewstack/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns the config directory using XDG standard (~/.config/viewstack/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// readDocument reads a view document and reports its format from the file
// extension.
func readDocument(path string) ([]byte, string, error) {
	format, err := errors.FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return data, format, nil
}

// outputFormat derives a render format from an output path or bare format
// name ("svg", "out.svg").
func outputFormat(out string) string {
	if ext := filepath.Ext(out); ext != "" {
		return strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	return strings.ToLower(out)
}
