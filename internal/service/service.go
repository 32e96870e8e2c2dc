// Package service wraps the catalog and evaluator behind a cached facade
// shared by the HTTP and MCP surfaces. Formulas are deterministic, so a
// repeated request is served from cache: an in-memory LRU tier for hot
// entries backed by an optional Redis tier shared across replicas.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/evaluator"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/registry"
)

// CalculatorService is the cached evaluation facade. Safe for concurrent use.
type CalculatorService struct {
	registry  *registry.Registry
	evaluator *evaluator.Evaluator

	memoryCache *lru.Cache[string, *cacheEntry]
	redisClient redis.UniversalClient

	memoryCacheTTL time.Duration
	redisCacheTTL  time.Duration

	logger  *logrus.Logger
	stats   *CacheStats
	statsMu sync.RWMutex
}

// CacheStats reports cache performance counters since the last reset.
type CacheStats struct {
	MemoryHits    int64     `json:"memory_hits"`
	MemoryMisses  int64     `json:"memory_misses"`
	RedisHits     int64     `json:"redis_hits"`
	RedisMisses   int64     `json:"redis_misses"`
	Evaluations   int64     `json:"evaluations"`
	TotalRequests int64     `json:"total_requests"`
	ErrorCount    int64     `json:"error_count"`
	LastReset     time.Time `json:"last_reset"`
}

// Config tunes the service's caching behavior.
type Config struct {
	MemoryCacheTTL time.Duration `json:"memory_cache_ttl"`
	RedisCacheTTL  time.Duration `json:"redis_cache_ttl"`
	MaxMemorySize  int           `json:"max_memory_size"`
}

// New creates the service. A nil redisClient disables the Redis tier;
// single-process deployments run fine on the memory tier alone.
func New(
	reg *registry.Registry,
	eval *evaluator.Evaluator,
	redisClient redis.UniversalClient,
	cfg Config,
	logger *logrus.Logger,
) (*CalculatorService, error) {
	if cfg.MemoryCacheTTL == 0 {
		cfg.MemoryCacheTTL = 15 * time.Minute
	}
	if cfg.RedisCacheTTL == 0 {
		cfg.RedisCacheTTL = 24 * time.Hour
	}
	if cfg.MaxMemorySize == 0 {
		cfg.MaxMemorySize = 1000
	}
	if logger == nil {
		logger = logrus.New()
	}

	memoryCache, err := lru.New[string, *cacheEntry](cfg.MaxMemorySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	return &CalculatorService{
		registry:       reg,
		evaluator:      eval,
		memoryCache:    memoryCache,
		redisClient:    redisClient,
		memoryCacheTTL: cfg.MemoryCacheTTL,
		redisCacheTTL:  cfg.RedisCacheTTL,
		logger:         logger,
		stats:          &CacheStats{LastReset: time.Now()},
	}, nil
}

// Registry exposes the underlying catalog for read-only listing endpoints.
func (s *CalculatorService) Registry() *registry.Registry {
	return s.registry
}

// Evaluate runs one calculation, serving repeats from cache. Errors are
// never cached; only successful results enter either tier.
func (s *CalculatorService) Evaluate(ctx context.Context, req domain.EvaluationRequest) (*domain.EvaluationResult, error) {
	s.incrementStat(&s.stats.TotalRequests)

	key := cacheKey(req)

	if result := s.getFromMemoryCache(key); result != nil {
		s.incrementStat(&s.stats.MemoryHits)
		s.logger.WithFields(logrus.Fields{
			"calculator": req.CalculatorID,
			"cache_tier": "memory",
		}).Debug("cache hit")
		return result, nil
	}
	s.incrementStat(&s.stats.MemoryMisses)

	if result := s.getFromRedisCache(ctx, key); result != nil {
		s.incrementStat(&s.stats.RedisHits)
		s.logger.WithFields(logrus.Fields{
			"calculator": req.CalculatorID,
			"cache_tier": "redis",
		}).Debug("cache hit")
		s.setInMemoryCache(key, result)
		return result, nil
	}
	s.incrementStat(&s.stats.RedisMisses)

	s.incrementStat(&s.stats.Evaluations)
	result, err := s.evaluator.Evaluate(req)
	if err != nil {
		s.incrementStat(&s.stats.ErrorCount)
		return nil, err
	}

	s.setInMemoryCache(key, result)
	s.setInRedisCache(ctx, key, result)

	return result, nil
}

// Interpret resolves the interpretation band for an already-computed value.
// Band resolution is a map lookup plus a linear scan; it is not cached.
func (s *CalculatorService) Interpret(calculatorID string, value float64) (string, error) {
	return s.evaluator.Interpret(calculatorID, value)
}

// InvalidateAll drops the memory tier and deletes Redis evaluation entries.
// Needed only when the catalog changes, which in practice means a deploy.
func (s *CalculatorService) InvalidateAll(ctx context.Context) error {
	s.memoryCache.Purge()

	if s.redisClient == nil {
		return nil
	}
	iter := s.redisClient.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	s.logger.Info("evaluation caches invalidated")
	return nil
}

// Stats returns a snapshot of the cache counters.
func (s *CalculatorService) Stats() CacheStats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return *s.stats
}

const redisKeyPrefix = "nephro:eval:"

// cacheKey derives a stable key from the calculator id, the raw field
// values, and the per-field unit systems. Map iteration order is not
// stable, so entries are sorted before hashing.
func cacheKey(req domain.EvaluationRequest) string {
	parts := make([]string, 0, len(req.Values)+len(req.UnitSystems))
	for id, v := range req.Values {
		parts = append(parts, id+"="+v)
	}
	for id, sys := range req.UnitSystems {
		parts = append(parts, id+"@"+sys.String())
	}
	sort.Strings(parts)

	sum := sha256.Sum256([]byte(req.CalculatorID + "|" + strings.Join(parts, "|")))
	return redisKeyPrefix + req.CalculatorID + ":" + hex.EncodeToString(sum[:16])
}

func (s *CalculatorService) getFromMemoryCache(key string) *domain.EvaluationResult {
	entry, ok := s.memoryCache.Get(key)
	if !ok {
		return nil
	}
	if entry.isExpired() {
		s.memoryCache.Remove(key)
		return nil
	}
	return entry.result
}

func (s *CalculatorService) setInMemoryCache(key string, result *domain.EvaluationResult) {
	s.memoryCache.Add(key, &cacheEntry{
		result: result,
		expiry: time.Now().Add(s.memoryCacheTTL),
	})
}

func (s *CalculatorService) getFromRedisCache(ctx context.Context, key string) *domain.EvaluationResult {
	if s.redisClient == nil {
		return nil
	}
	payload, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WithError(err).Warn("redis cache read failed")
		}
		return nil
	}
	var result domain.EvaluationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		s.logger.WithError(err).Warn("discarding undecodable redis cache entry")
		return nil
	}
	return &result
}

func (s *CalculatorService) setInRedisCache(ctx context.Context, key string, result *domain.EvaluationResult) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode result for redis cache")
		return
	}
	if err := s.redisClient.Set(ctx, key, payload, s.redisCacheTTL).Err(); err != nil {
		s.logger.WithError(err).Warn("redis cache write failed")
	}
}

func (s *CalculatorService) incrementStat(counter *int64) {
	s.statsMu.Lock()
	*counter++
	s.statsMu.Unlock()
}

type cacheEntry struct {
	result *domain.EvaluationResult
	expiry time.Time
}

func (e *cacheEntry) isExpired() bool {
	return time.Now().After(e.expiry)
}
