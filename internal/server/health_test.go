package server_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/UnknownOlympus/ont/internal/server"
	"github.com/stretchr/testify/require"
)

type MockDBPinger struct {
	ShouldFail bool
}

func (m *MockDBPinger) Ping(_ context.Context) error {
	if m.ShouldFail {
		return errors.New("mock db error")
	}
	return nil
}

func TestHealthChecker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("database ok", func(t *testing.T) {
		healthChecker := server.NewHealthChecker(&MockDBPinger{ShouldFail: false}, logger)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"database":"ok"}`, rr.Body.String())
	})

	t.Run("database unavailable", func(t *testing.T) {
		healthChecker := server.NewHealthChecker(&MockDBPinger{ShouldFail: true}, logger)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		require.JSONEq(t, `{"database":"unavailable"}`, rr.Body.String())
	})
}
