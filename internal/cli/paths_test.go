package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/treepage/pkg/config"
	"github.com/matzehuels/treepage/pkg/source"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/tester")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/home/tester", ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = "/srv/treepage-cache"

	dir, err := c.cacheDir()
	if err != nil || dir != "/srv/treepage-cache" {
		t.Errorf("cacheDir() = %q, %v, want the configured dir", dir, err)
	}
}

func TestInferDriver(t *testing.T) {
	tests := map[string]string{
		"menu.json":                          source.DriverFile,
		"menu.YAML":                          source.DriverFile,
		"pages.db":                           source.DriverSQLite,
		"pages.sqlite3":                      source.DriverSQLite,
		"pages.bolt":                         source.DriverBolt,
		"redis://localhost:6379/0":           source.DriverRedis,
		"mongodb://localhost:27017":          source.DriverMongo,
		"mongodb+srv://cluster.example.net/": source.DriverMongo,
		"pages":                              "",
	}
	for dsn, want := range tests {
		if got := inferDriver(dsn); got != want {
			t.Errorf("inferDriver(%q) = %q, want %q", dsn, got, want)
		}
	}
}

func TestSourceConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Source = config.SourceConfig{Driver: source.DriverBolt, DSN: "site.bolt", Namespace: "menus"}

	tests := []struct {
		name  string
		dsn   string
		flags sourceFlags
		want  source.Config
	}{
		{"config only", "", sourceFlags{}, source.Config{Driver: "bolt", DSN: "site.bolt", Namespace: "menus"}},
		{"dsn picks driver", "pages.db", sourceFlags{}, source.Config{Driver: "sqlite", DSN: "pages.db", Namespace: "menus"}},
		{"unknown shape keeps config driver", "pages", sourceFlags{}, source.Config{Driver: "bolt", DSN: "pages", Namespace: "menus"}},
		{"flags win", "pages.db", sourceFlags{driver: "file", namespace: "x"}, source.Config{Driver: "file", DSN: "pages.db", Namespace: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.sourceConfig(tt.dsn, tt.flags); got != tt.want {
				t.Errorf("sourceConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
