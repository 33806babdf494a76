// Package config loads treepage settings from TOML files.
//
// Settings are layered: built-in defaults, then each file passed to
// [LoadMerged] in order, then command-line flags (applied by the CLI).
// Missing files are skipped, so a fresh install runs on defaults.
//
//	[source]
//	driver = "sqlite"
//	dsn = "/var/lib/cms/pages.db"
//
//	[pagination]
//	per_page = 25
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "1h"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/treepage/pkg/errors"
	"github.com/matzehuels/treepage/pkg/source"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full settings tree.
type Config struct {
	Source     SourceConfig     `toml:"source"`
	Pagination PaginationConfig `toml:"pagination"`
	Cache      CacheConfig      `toml:"cache"`
	Log        LogConfig        `toml:"log"`
}

// SourceConfig selects the record store.
type SourceConfig struct {
	Driver    string `toml:"driver"`
	DSN       string `toml:"dsn"`
	Namespace string `toml:"namespace"`
}

// PaginationConfig holds the default window. Zero values mean unpaged.
type PaginationConfig struct {
	Page    int `toml:"page"`
	PerPage int `toml:"per_page"`
}

// CacheConfig selects and tunes the page cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	TTL       time.Duration `toml:"ttl"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Source: SourceConfig{Driver: source.DriverFile},
		Cache:  CacheConfig{Backend: CacheFile, TTL: 24 * time.Hour},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a single file on top of the defaults.
func Load(path string) (Config, error) {
	return LoadMerged(path)
}

// LoadMerged decodes each existing file in order on top of the defaults, so
// later files override earlier ones key by key, and validates the result.
func LoadMerged(paths ...string) (Config, error) {
	cfg := Default()
	for _, p := range paths {
		if p == "" || !fileExists(p) {
			continue
		}
		if _, err := toml.DecodeFile(p, &cfg); err != nil {
			return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", p)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	if err := errs.ValidateChoice(errs.ErrCodeInvalidDriver, "source.driver", c.Source.Driver, source.Drivers()); err != nil {
		return err
	}
	if err := errs.ValidatePage(c.Pagination.Page); err != nil {
		return err
	}
	if err := errs.ValidatePerPage(c.Pagination.PerPage); err != nil {
		return err
	}
	if err := errs.ValidateChoice(errs.ErrCodeInvalidConfig, "cache.backend", c.Cache.Backend,
		[]string{CacheFile, CacheRedis, CacheNone}); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return errs.ValidateChoice(errs.ErrCodeInvalidConfig, "log.level", c.Log.Level,
		[]string{"debug", "info", "warn", "error"})
}

// DefaultPath returns $XDG_CONFIG_HOME/treepage/config.toml, falling back to
// ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "treepage", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "treepage", "config.toml")
	}
	return filepath.Join(home, ".config", "treepage", "config.toml")
}

// Write encodes cfg as TOML to path, creating parent directories.
func Write(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
