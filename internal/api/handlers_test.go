package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/config"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/evaluator"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/registry"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/service"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/units"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	manager, err := config.NewManager()
	require.NoError(t, err)

	reg := registry.Default()
	eval := evaluator.New(reg, units.NewEngine(nil), nil)
	svc, err := service.New(reg, eval, nil, service.Config{}, nil)
	require.NoError(t, err)

	return NewServer(manager, svc, nil, nil, nil)
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 52, body["calculators"])
}

func TestHandleListCalculators(t *testing.T) {
	srv := newTestServer(t)

	t.Run("full catalog", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/calculators", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Len(t, body["calculators"], 52)
	})

	t.Run("filtered by category", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/calculators?category=Dialysis", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Len(t, body["calculators"], 5)
	})

	t.Run("unknown category", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/calculators?category=Astrology", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "INVALID_INPUT", body["code"])
	})
}

func TestHandleGetCalculator(t *testing.T) {
	srv := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/calculators/fena", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Fractional excretion of sodium", body["name"])
		assert.NotEmpty(t, body["inputs"])
	})

	t.Run("not found", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/calculators/nope", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		body := decode(t, w)
		assert.Equal(t, "CALCULATOR_NOT_FOUND", body["code"])
	})
}

func TestHandleEvaluate(t *testing.T) {
	srv := newTestServer(t)

	t.Run("success with display rounding", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/calculators/fena/evaluate", map[string]any{
			"values": map[string]string{
				"urine_sodium":      "20",
				"plasma_sodium":     "140",
				"urine_creatinine":  "80",
				"plasma_creatinine": "2.0",
			},
		})

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.InDelta(t, 0.3571, body["value"].(float64), 1e-3)
		assert.Equal(t, "0.36", body["display_value"])
		assert.Equal(t, "Prerenal azotemia", body["interpretation"])
	})

	t.Run("missing field", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/calculators/fena/evaluate", map[string]any{
			"values": map[string]string{"urine_sodium": "20"},
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "MISSING_REQUIRED_FIELD", body["code"])
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/calculators/fena/evaluate", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown calculator", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/v1/calculators/nope/evaluate", map[string]any{
			"values": map[string]string{},
		})
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleCategories(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["categories"], 9)
}

func TestHandleSearch(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/search?q=anion+gap", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	results := body["results"].([]any)
	require.NotEmpty(t, results)
	first := results[0].(map[string]any)
	assert.Equal(t, "anion-gap", first["id"])
}

func TestHandleListAnalytes(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/analytes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["analytes"])
}

func TestFeedbackRoutesWithoutStore(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/calculators/fena/feedback", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(t, srv, http.MethodPost, "/api/v1/calculators/fena/feedback", map[string]any{
		"reviewer_id": "r1",
		"assessment":  "Accurate",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHistoryRouteWithoutRepository(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/calculators/fena/history", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCacheStatsRoute(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/cache/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Contains(t, body, "memory_hits")
}
