package mcp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/config"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/feedback"
)

func TestNewServer(t *testing.T) {
	t.Setenv("NEPHRO_DATA_DIR", t.TempDir())
	cfg := config.LoadLiteConfig()

	server, err := NewServer(cfg)
	require.NoError(t, err)
	defer server.Close()

	assert.NotNil(t, server.mcpServer)
	assert.NotNil(t, server.service)
	assert.NotNil(t, server.logger)
	assert.NotNil(t, server.GetFeedbackStore())

	// The default store lands in the configured data directory.
	_, err = os.Stat(cfg.FeedbackDBPath())
	assert.NoError(t, err)
}

func TestNewServer_WithOptions(t *testing.T) {
	t.Setenv("NEPHRO_DATA_DIR", t.TempDir())

	store, err := feedback.NewSQLiteStore(filepath.Join(t.TempDir(), "custom.db"))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	server, err := NewServer(config.LoadLiteConfig(), WithFeedbackStore(store), WithLogger(logger))
	require.NoError(t, err)
	defer server.Close()

	assert.Same(t, store, server.GetFeedbackStore())
	assert.Same(t, logger, server.logger)
}

func TestServer_Close(t *testing.T) {
	t.Setenv("NEPHRO_DATA_DIR", t.TempDir())

	server, err := NewServer(config.LoadLiteConfig())
	require.NoError(t, err)
	assert.NoError(t, server.Close())
}
