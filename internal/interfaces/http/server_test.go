package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamepulse/gamepulse/internal/domain"
	"github.com/gamepulse/gamepulse/internal/orchestrator"
	"github.com/gamepulse/gamepulse/internal/providers"
)

type stubCatalog struct{ err error }

func (s *stubCatalog) AppDetails(context.Context, int) (*providers.CatalogDetails, error) {
	if s.err != nil {
		return nil, s.err
	}
	details := &providers.CatalogDetails{Name: "Portal 2", Developer: "Valve"}
	details.Price.Current = 2000
	details.Price.Initial = 2000
	return details, nil
}

type stubOwnership struct{ err error }

func (s *stubOwnership) AppStats(context.Context, int) (*providers.OwnershipStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &providers.OwnershipStats{
		Owners:            "400,000 .. 600,000",
		AverageForever:    600,
		ConcurrentPlayers: 5000,
		ScoreRank:         "Very Positive",
	}, nil
}

func testServer(catErr, ownErr error) *Server {
	cfg := orchestrator.DefaultConfig()
	cfg.BatchPacing = time.Millisecond
	engine := orchestrator.New(&stubCatalog{err: catErr}, &stubOwnership{err: ownErr}, nil, cfg)
	return NewServer(engine, Config{Addr: ":0"})
}

func TestHandleAnalyze_OK(t *testing.T) {
	s := testServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/620", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 620, result.AppID)
	assert.Equal(t, "Portal 2", result.Name)
	assert.True(t, result.Sources.Catalog)
}

func TestHandleAnalyze_NonNumericPathRejected(t *testing.T) {
	s := testServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/abc", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	// The route pattern only matches numeric ids.
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAnalyze_AllSourcesDown(t *testing.T) {
	boom := errors.New("refused")
	s := testServer(boom, boom)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/620", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "all sources unavailable")
}

func TestHandleBatch(t *testing.T) {
	s := testServer(nil, nil)

	body, _ := json.Marshal(map[string][]int{"app_ids": {620, 440}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/batch", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []batchItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, 620, items[0].AppID)
	assert.Empty(t, items[0].Error)
}

func TestHandleBatch_EmptyBody(t *testing.T) {
	s := testServer(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/batch", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := testServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(nil, nil)

	// Drive one analysis so the counters exist.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis/620", nil)
	s.srv.Handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gamepulse_analyses_total")
}
