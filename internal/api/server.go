// Package api exposes the calculator catalog and evaluator over HTTP:
// a JSON REST surface plus a websocket endpoint streaming live result
// previews as form values change.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/config"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/feedback"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/middleware"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/repository"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/service"
)

// Server represents the HTTP server.
type Server struct {
	configManager *config.Manager
	service       *service.CalculatorService
	feedbackStore feedback.Store
	history       *repository.EvaluationRepository
	logger        *logrus.Logger
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance. feedbackStore may be nil,
// in which case the feedback routes respond 503. history may be nil, in
// which case evaluations are not recorded and the history route responds 503.
func NewServer(
	configManager *config.Manager,
	svc *service.CalculatorService,
	feedbackStore feedback.Store,
	history *repository.EvaluationRepository,
	logger *logrus.Logger,
) *Server {
	cfg := configManager.GetConfig()

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if logger == nil {
		logger = logrus.New()
	}

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())

	server := &Server{
		configManager: configManager,
		service:       svc,
		feedbackStore: feedbackStore,
		history:       history,
		logger:        logger,
		router:        router,
	}

	server.setupRoutes()

	return server
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	cfg := s.configManager.GetConfig()
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	v1 := s.router.Group("/api/v1")
	v1.Use(limiter.Middleware())
	// Deadline on REST routes only; the websocket preview stays open.
	v1.Use(middleware.RequestTimeout(cfg.Server.WriteTimeout))
	{
		v1.GET("/calculators", s.handleListCalculators)
		v1.GET("/calculators/:id", s.handleGetCalculator)
		v1.POST("/calculators/:id/evaluate", s.handleEvaluate)
		v1.GET("/calculators/:id/history", s.handleEvaluationHistory)
		v1.GET("/calculators/:id/feedback", s.handleListFeedback)
		v1.POST("/calculators/:id/feedback", s.handleSaveFeedback)
		v1.GET("/categories", s.handleListCategories)
		v1.GET("/categories/:category/calculators", s.handleCategoryCalculators)
		v1.GET("/search", s.handleSearch)
		v1.GET("/analytes", s.handleListAnalytes)
		v1.GET("/cache/stats", s.handleCacheStats)
	}

	// Websocket preview sits outside the JSON group; the token bucket
	// would throttle the long-lived connection's upgrade path only.
	s.router.GET("/ws/calculators/:id/preview", s.handlePreview)
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now(),
		"calculators": s.service.Registry().Len(),
	})
}

// corsMiddleware adds CORS headers to responses.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-API-Key")
		c.Header("Access-Control-Expose-Headers", "Content-Length")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
