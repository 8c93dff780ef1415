package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// configFile is the default config file name inside configDir.
const configFile = "config.toml"

// Config holds settings read from the optional TOML config file.
//
//	cache_dir    = "/var/cache/viewstack"
//	cache_ttl    = "24h"
//	redis_addr   = "localhost:6379"
//	redis_prefix = "viewstack:"
//	no_cache     = false
//	verbose      = true
type Config struct {
	CacheDir    string   `toml:"cache_dir"`
	CacheTTL    duration `toml:"cache_ttl"`
	RedisAddr   string   `toml:"redis_addr"`
	RedisPrefix string   `toml:"redis_prefix"`
	NoCache     bool     `toml:"no_cache"`
	Verbose     bool     `toml:"verbose"`

	path string // file the config was read from, empty if none
}

// duration decodes TOML strings such as "36h" or "15m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// loadConfig reads the config at path. With an empty path it reads the
// default location and treats a missing file as an empty config.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return Config{}, nil
		}
		path = filepath.Join(dir, configFile)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	cfg.path = path
	return cfg, nil
}

// cacheDir returns the configured cache directory or the XDG default.
func (c Config) cacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	return cacheDir()
}

// redisPrefix returns the configured key prefix or the application default.
func (c Config) redisPrefix() string {
	if c.RedisPrefix != "" {
		return c.RedisPrefix
	}
	return defaultRedisPrefix
}
