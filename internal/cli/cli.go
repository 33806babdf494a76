package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treepage/pkg/cache"
	"github.com/matzehuels/treepage/pkg/config"
	"github.com/matzehuels/treepage/pkg/pipeline"
	"github.com/matzehuels/treepage/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "treepage"

	// redisPrefix namespaces page cache keys in a shared Redis.
	redisPrefix = appName + ":"
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
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The configuration file is read when a command runs.
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

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured page cache.
// A non-empty namespace scopes its cache keys.
func (c *CLI) newRunner(ctx context.Context, namespace string, noCache bool) (*pipeline.Runner, error) {
	pc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if namespace != "" {
		keyer = cache.NewScopedKeyer(nil, namespace+":")
	}
	r := pipeline.NewRunner(pc, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   c.Config.Cache.RedisAddr,
			DB:     c.Config.Cache.RedisDB,
			Prefix: redisPrefix,
		})
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/treepage/).
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
// Sources
// =============================================================================

// sourceFlags selects a record store on the command line.
type sourceFlags struct {
	driver    string
	namespace string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.driver, "driver", "d", "", "record store: "+strings.Join(source.Drivers(), ", ")+" (default: from dsn or config)")
	cmd.Flags().StringVarP(&f.namespace, "namespace", "n", "", "table, bucket, key prefix or db.collection")
}

// sourceConfig resolves the store to open. A dsn given on the command line
// picks its driver from the --driver flag or its own shape; without one the
// configured store is used.
func (c *CLI) sourceConfig(dsn string, f sourceFlags) source.Config {
	cfg := source.Config{
		Driver:    c.Config.Source.Driver,
		DSN:       c.Config.Source.DSN,
		Namespace: c.Config.Source.Namespace,
	}
	if dsn != "" {
		cfg.DSN = dsn
		if d := inferDriver(dsn); d != "" {
			cfg.Driver = d
		}
	}
	if f.driver != "" {
		cfg.Driver = f.driver
	}
	if f.namespace != "" {
		cfg.Namespace = f.namespace
	}
	return cfg
}

func (c *CLI) openSource(ctx context.Context, dsn string, f sourceFlags) (source.Source, error) {
	cfg := c.sourceConfig(dsn, f)
	c.Logger.Debug("opening record store", "driver", cfg.Driver, "dsn", cfg.DSN, "namespace", cfg.Namespace)
	return source.Open(ctx, cfg)
}

// inferDriver guesses the driver from a dsn's scheme or file extension.
func inferDriver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return source.DriverRedis
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return source.DriverMongo
	}
	switch strings.ToLower(filepath.Ext(dsn)) {
	case ".json", ".yaml", ".yml":
		return source.DriverFile
	case ".db", ".sqlite", ".sqlite3":
		return source.DriverSQLite
	case ".bolt", ".bbolt":
		return source.DriverBolt
	}
	return ""
}
