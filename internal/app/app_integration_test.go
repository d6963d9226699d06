package app_test

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/UnknownOlympus/ont/internal/app"
	"github.com/UnknownOlympus/ont/internal/config"
	"github.com/UnknownOlympus/ont/internal/metrics"
	"github.com/UnknownOlympus/ont/internal/server"
)

func TestRun_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctr, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := &config.Config{Env: "local", AtlasURI: uri, HTTPAddr: config.HTTPAddr, ConnectTimeout: 30 * time.Second}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// the configured address is fixed, the test serves on a free port instead
	bootstrap := app.New(logger, cfg, metrics.NewMetrics(prometheus.NewRegistry()),
		app.WithListener(func(ctx context.Context, log *slog.Logger, _ string, handler http.Handler) error {
			return server.Serve(ctx, log, lis, handler)
		}),
	)

	done := make(chan error, 1)
	go func() {
		done <- bootstrap.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return bootstrap.State() == app.StateListening
	}, 30*time.Second, 50*time.Millisecond)

	resp, err := http.Get("http://" + lis.Addr().String() + "/")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("bootstrap did not stop")
	}
}

func TestRun_UnreachableDatabase(t *testing.T) {
	t.Parallel()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	cfg := &config.Config{
		Env:            "local",
		AtlasURI:       "mongodb://127.0.0.1:9/?serverSelectionTimeoutMS=200",
		HTTPAddr:       addr,
		ConnectTimeout: time.Second,
	}
	bootstrap := app.New(slog.New(slog.NewTextHandler(os.Stdout, nil)), cfg,
		metrics.NewMetrics(prometheus.NewRegistry()))

	err = bootstrap.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, app.StateFailed, bootstrap.State())

	// nothing was started on the listener address
	_, dialErr := net.DialTimeout("tcp", addr, 200*time.Millisecond)
	require.Error(t, dialErr)
}
