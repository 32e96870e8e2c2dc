package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/api"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/config"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/database"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/evaluator"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/feedback"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/registry"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/repository"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/service"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/units"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()

	logger := newLogger(cfg.Logging)
	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Starting clinical calculator server")

	// Build the calculator pipeline: catalog, unit engine, evaluator.
	reg := registry.Default()
	eng := units.NewEngine(logger)
	eval := evaluator.New(reg, eng, logger)

	// Optional Redis cache tier.
	var redisClient redis.UniversalClient
	if cfg.Cache.RedisEnabled {
		opts, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Invalid redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	}

	svc, err := service.New(reg, eval, redisClient, service.Config{
		MemoryCacheTTL: cfg.Cache.MemoryTTL,
		RedisCacheTTL:  cfg.Cache.RedisTTL,
		MaxMemorySize:  cfg.Cache.MaxMemorySize,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create calculator service: %v", err)
	}

	// Postgres persistence for feedback and evaluation history; the server
	// still serves calculations when the database is down, those routes
	// just report unavailable.
	var store feedback.Store
	var history *repository.EvaluationRepository
	if err := runMigrations(configManager, logger); err != nil {
		logger.WithError(err).Warn("Schema migrations failed, continuing without persistence")
	} else {
		if pgStore, err := feedback.NewPostgresStoreFromURL(configManager.GetDatabaseConnectionString()); err != nil {
			logger.WithError(err).Warn("Feedback store unavailable, continuing without it")
		} else {
			store = pgStore
			defer pgStore.Close()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if db, err := database.NewConnection(ctx, configManager.GetDatabaseConfig(), logger); err != nil {
			logger.WithError(err).Warn("Evaluation history unavailable, continuing without it")
		} else {
			history = repository.NewEvaluationRepository(db.Pool, logger)
			defer db.Close()
		}
		cancel()
	}

	server := api.NewServer(configManager, svc, store, history, logger)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}

	logger.Info("Server stopped")
}

// runMigrations verifies connectivity and applies the embedded schema
// migrations.
func runMigrations(configManager *config.Manager, logger *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.NewConnection(ctx, configManager.GetDatabaseConfig(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	runner, err := database.NewMigrationRunner(configManager.GetDatabaseURL(), logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.Up()
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
