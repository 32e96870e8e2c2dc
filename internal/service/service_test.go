package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/domain"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/evaluator"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/registry"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/units"
)

func newTestService(t *testing.T, cfg Config) *CalculatorService {
	t.Helper()
	reg := registry.Default()
	eval := evaluator.New(reg, units.NewEngine(nil), nil)

	svc, err := New(reg, eval, nil, cfg, nil)
	require.NoError(t, err)
	return svc
}

func anionGapRequest() domain.EvaluationRequest {
	return domain.EvaluationRequest{
		CalculatorID: "anion-gap",
		Values: map[string]string{
			"sodium":      "140",
			"chloride":    "104",
			"bicarbonate": "21",
		},
	}
}

func TestService_Evaluate(t *testing.T) {
	svc := newTestService(t, Config{})
	ctx := context.Background()

	result, err := svc.Evaluate(ctx, anionGapRequest())
	require.NoError(t, err)
	assert.InDelta(t, 15, result.Value, 1e-9)
	assert.Equal(t, "Borderline high", result.Interpretation)
}

func TestService_MemoryCacheHit(t *testing.T) {
	svc := newTestService(t, Config{})
	ctx := context.Background()

	first, err := svc.Evaluate(ctx, anionGapRequest())
	require.NoError(t, err)

	second, err := svc.Evaluate(ctx, anionGapRequest())
	require.NoError(t, err)
	assert.Equal(t, first.Value, second.Value)

	stats := svc.Stats()
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.MemoryHits)
	assert.Equal(t, int64(1), stats.MemoryMisses)
	assert.Equal(t, int64(1), stats.Evaluations, "second request must not re-run the formula")
}

func TestService_DistinctRequestsMiss(t *testing.T) {
	svc := newTestService(t, Config{})
	ctx := context.Background()

	_, err := svc.Evaluate(ctx, anionGapRequest())
	require.NoError(t, err)

	changed := anionGapRequest()
	changed.Values["bicarbonate"] = "12"
	_, err = svc.Evaluate(ctx, changed)
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, int64(0), stats.MemoryHits)
	assert.Equal(t, int64(2), stats.Evaluations)
}

func TestService_UnitSystemChangesCacheKey(t *testing.T) {
	// The same literal values in different unit systems are different
	// calculations and must not share a cache entry.
	a := anionGapRequest()
	b := anionGapRequest()
	b.UnitSystems = map[string]domain.UnitSystem{"sodium": domain.SI}

	assert.NotEqual(t, cacheKey(a), cacheKey(b))
}

func TestService_ErrorsNotCached(t *testing.T) {
	svc := newTestService(t, Config{})
	ctx := context.Background()

	bad := anionGapRequest()
	bad.Values["sodium"] = "not a number"

	for i := 0; i < 2; i++ {
		_, err := svc.Evaluate(ctx, bad)
		require.Error(t, err)
	}

	stats := svc.Stats()
	assert.Equal(t, int64(2), stats.Evaluations, "failed evaluations re-run every time")
	assert.Equal(t, int64(2), stats.ErrorCount)
	assert.Equal(t, int64(0), stats.MemoryHits)
}

func TestService_MemoryCacheTTLExpiry(t *testing.T) {
	svc := newTestService(t, Config{MemoryCacheTTL: time.Nanosecond})
	ctx := context.Background()

	_, err := svc.Evaluate(ctx, anionGapRequest())
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = svc.Evaluate(ctx, anionGapRequest())
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, int64(0), stats.MemoryHits, "expired entry must not serve")
	assert.Equal(t, int64(2), stats.Evaluations)
}

func TestService_InvalidateAll(t *testing.T) {
	svc := newTestService(t, Config{})
	ctx := context.Background()

	_, err := svc.Evaluate(ctx, anionGapRequest())
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateAll(ctx))

	_, err = svc.Evaluate(ctx, anionGapRequest())
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, int64(0), stats.MemoryHits)
	assert.Equal(t, int64(2), stats.Evaluations)
}

func TestService_Interpret(t *testing.T) {
	svc := newTestService(t, Config{})

	text, err := svc.Interpret("ckd-epi-2021", 50)
	require.NoError(t, err)
	assert.Contains(t, text, "Stage 3a")

	_, err = svc.Interpret("missing", 50)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
