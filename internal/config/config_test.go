package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":37371", cfg.Addr)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "/writing/assets", cfg.AssetPrefix)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.RemoteContent())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FOLIO_CONTENT_INDEX_URL", "https://cdn.example.com/posts/index.json")
	t.Setenv("FOLIO_ASSET_PREFIX", "media/")
	t.Setenv("FOLIO_LOAD_CONCURRENCY", "4")
	t.Setenv("FOLIO_FETCH_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.RemoteContent())
	assert.Equal(t, "/media", cfg.AssetPrefix)
	assert.Equal(t, 4, cfg.LoadConcurrency)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadRejectsNegativeConcurrency(t *testing.T) {
	t.Setenv("FOLIO_LOAD_CONCURRENCY", "-1")

	_, err := Load()
	assert.Error(t, err)
}
