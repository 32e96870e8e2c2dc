// Package mcp exposes the calculator catalog and evaluator as MCP tools
// over stdio, so assistants can list, search, and run clinical calculators.
// The server is self-contained: in-memory caching and a local SQLite
// feedback store, no external services.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/config"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/evaluator"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/feedback"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/registry"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/service"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/units"
)

// Server is the standalone MCP server.
type Server struct {
	config        *config.LiteConfig
	mcpServer     *mcp.Server
	service       *service.CalculatorService
	feedbackStore feedback.Store
	logger        *logrus.Logger
}

// Option is a functional option for Server.
type Option func(*Server) error

// WithFeedbackStore sets a custom feedback store.
func WithFeedbackStore(store feedback.Store) Option {
	return func(s *Server) error {
		s.feedbackStore = store
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.LiteConfig, opts ...Option) (*Server, error) {
	server := &Server{
		config: cfg,
		logger: logrus.New(),
	}

	if cfg.LogFormat == "text" {
		server.logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		server.logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	server.logger.SetLevel(level)

	for _, opt := range opts {
		if err := opt(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if server.feedbackStore == nil {
		store, err := feedback.NewSQLiteStore(cfg.FeedbackDBPath())
		if err != nil {
			return nil, fmt.Errorf("failed to create feedback store: %w", err)
		}
		server.feedbackStore = store
	}

	reg := registry.Default()
	eng := units.NewEngine(server.logger)
	eval := evaluator.New(reg, eng, server.logger)

	// Memory cache tier only; the standalone server has no Redis.
	svc, err := service.New(reg, eval, nil, service.Config{
		MemoryCacheTTL: cfg.CacheTTL,
		MaxMemorySize:  cfg.CacheMaxItems,
	}, server.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create calculator service: %w", err)
	}
	server.service = svc

	serverInfo := &mcp.Implementation{
		Name:    "nephro-calc-mcp-server",
		Version: "v0.1.0",
	}
	server.mcpServer = mcp.NewServer(serverInfo, nil)

	server.registerTools()

	server.logger.WithField("calculators", reg.Len()).Info("MCP server initialized")
	return server, nil
}

// Start runs the MCP server over stdio until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting clinical calculator MCP server...")

	if err := s.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.feedbackStore != nil {
		if err := s.feedbackStore.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close feedback store")
			return err
		}
	}
	return nil
}

// GetFeedbackStore returns the feedback store for external access.
func (s *Server) GetFeedbackStore() feedback.Store {
	return s.feedbackStore
}
