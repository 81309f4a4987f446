package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboardhttp "github.com/mallops/mallops/internal/dashboard/http"
	"github.com/mallops/mallops/internal/observability"
	"github.com/mallops/mallops/internal/view"
)

func newTestRouter(t *testing.T, readiness map[string]ReadinessCheck) (http.Handler, *DataLayer) {
	t.Helper()
	cfg := &Config{AppEnv: "test"}
	metrics := observability.NewMetrics()
	data := NewDataLayer(cfg, nil, metrics.Registerer(), nil)
	metrics.TrackSourceMode(data.Source.MockActive)
	templates, err := view.NewEngine()
	require.NoError(t, err)
	handler := dashboardhttp.NewHandler(nil, data.Service, data.Source, templates, nil, dashboardhttp.Config{})
	return NewRouter(RouterParams{
		Config:           cfg,
		DashboardHandler: handler,
		Metrics:          metrics,
		Readiness:        readiness,
	}), data
}

func TestRouterHealthAndSecurityHeaders(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}

func TestRouterReadiness(t *testing.T) {
	router, _ := newTestRouter(t, map[string]ReadinessCheck{
		"redis":   func(context.Context) error { return errors.New("connection refused") },
		"backend": func(context.Context) error { return nil },
	})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"redis":"unavailable","backend":"ok"}`, rr.Body.String())
}

func TestRouterServesDashboardInMockMode(t *testing.T) {
	router, data := newTestRouter(t, nil)
	require.True(t, data.Source.MockActive())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Mall A")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "mallops_data_source_mock 1")
	assert.Contains(t, body, `mallops_dashboard_queries_total{entity="malls",outcome="mock"}`)
}

func TestRouterStaticAssetsCached(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/css"))
}

func TestReadBuildInfo(t *testing.T) {
	info := ReadBuildInfo()
	assert.NotEmpty(t, info.Version)
}
