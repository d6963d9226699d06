package server_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/UnknownOlympus/ont/internal/metrics"
	"github.com/UnknownOlympus/ont/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitoringHandler(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := prometheus.NewRegistry()
	_ = metrics.NewMetrics(reg)

	handler := server.NewMonitoringHandler(logger, reg, &MockDBPinger{})

	t.Run("healthz", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"database":"ok"}`, rr.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "ont_schema_enforcements_total")
	})
}

func TestStartMonitoringServer_Banner(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server.StartMonitoringServer(ctx, logger, prometheus.NewRegistry(), &MockDBPinger{}, 0)

	assert.Contains(t, logBuf.String(), "Monitoring server running at http://localhost:")
	assert.NotContains(t, logBuf.String(), "msg=\"Server running at")
	assert.NotContains(t, logBuf.String(), "Monitoring server failed")
}
