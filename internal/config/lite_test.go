package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLiteConfig(t *testing.T) {
	cfg := DefaultLiteConfig()

	assert.Contains(t, cfg.DataDir, ".nephro-calc")
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadLiteConfig_FromEnvironment(t *testing.T) {
	t.Setenv("NEPHRO_DATA_DIR", "/tmp/nephro-data")
	t.Setenv("NEPHRO_CACHE_MAX_ITEMS", "50")
	t.Setenv("NEPHRO_CACHE_TTL", "30m")
	t.Setenv("NEPHRO_LOG_LEVEL", "debug")
	t.Setenv("NEPHRO_LOG_FORMAT", "text")

	cfg := LoadLiteConfig()

	assert.Equal(t, "/tmp/nephro-data", cfg.DataDir)
	assert.Equal(t, 50, cfg.CacheMaxItems)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadLiteConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("NEPHRO_CACHE_MAX_ITEMS", "not-a-number")
	t.Setenv("NEPHRO_CACHE_TTL", "soon")

	cfg := LoadLiteConfig()

	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
}

func TestLiteConfig_FeedbackDBPath(t *testing.T) {
	cfg := &LiteConfig{DataDir: "/data/nephro"}
	assert.Equal(t, filepath.Join("/data/nephro", "feedback.db"), cfg.FeedbackDBPath())
}

func TestLiteConfig_EnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &LiteConfig{DataDir: dir}

	require.NoError(t, cfg.EnsureDataDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
