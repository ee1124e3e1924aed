// Package config loads the server settings from the environment.
//
// An optional .env file in the working directory is read first, so local
// development can keep its settings next to the content directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the folio server.
type Config struct {
	Addr string `env:"FOLIO_ADDR" envDefault:":37371"`

	// ContentDir is the directory holding one markdown file per post plus
	// any co-located images.
	ContentDir string `env:"FOLIO_CONTENT_DIR" envDefault:"content"`

	// ContentIndexURL switches the catalog to a remote content repository.
	// The URL points at an index.json listing the post file names; posts are
	// fetched relative to it.
	ContentIndexURL string `env:"FOLIO_CONTENT_INDEX_URL"`

	// AssetPrefix is the URL path co-located content assets are served under.
	AssetPrefix string `env:"FOLIO_ASSET_PREFIX" envDefault:"/writing/assets"`

	SessionSecret string `env:"FOLIO_SESSION_SECRET" envDefault:"folio-session-secret-change-me"`
	SecureCookies bool   `env:"FOLIO_SECURE_COOKIES" envDefault:"true"`

	// SearchDB is the SQLite DSN of the full-text index.
	SearchDB string `env:"FOLIO_SEARCH_DB" envDefault:":memory:"`

	ReindexCron  string `env:"FOLIO_REINDEX_CRON" envDefault:"@every 1h"`
	WatchContent bool   `env:"FOLIO_WATCH_CONTENT" envDefault:"true"`

	FetchTimeout    time.Duration `env:"FOLIO_FETCH_TIMEOUT" envDefault:"10s"`
	LoadConcurrency int           `env:"FOLIO_LOAD_CONCURRENCY" envDefault:"0"`

	SiteTitle       string `env:"FOLIO_SITE_TITLE" envDefault:"Writings"`
	SiteDescription string `env:"FOLIO_SITE_DESCRIPTION" envDefault:"Notes on software, systems and the craft of building them."`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (when present) and parses the environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if cfg.LoadConcurrency < 0 {
		return Config{}, fmt.Errorf("config: FOLIO_LOAD_CONCURRENCY must not be negative, got %d", cfg.LoadConcurrency)
	}
	cfg.AssetPrefix = "/" + strings.Trim(cfg.AssetPrefix, "/")
	return cfg, nil
}

// Level maps LogLevel onto a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RemoteContent reports whether posts come from a remote index.
func (c Config) RemoteContent() bool {
	return strings.TrimSpace(c.ContentIndexURL) != ""
}
