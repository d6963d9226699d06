package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UnknownOlympus/ont/internal/lib/logger/sl"
)

// NewMonitoringHandler serves /healthz and /metrics.
func NewMonitoringHandler(log *slog.Logger, reg prometheus.Gatherer, db DBPinger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthz", NewHealthChecker(db, log))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	return mux
}

// StartMonitoringServer serves the monitoring handler on port until ctx is cancelled.
// Failures are logged, the API listener keeps running without it.
func StartMonitoringServer(ctx context.Context, log *slog.Logger, reg prometheus.Gatherer, db DBPinger, port int) {
	log = log.With(slog.String("division", "monitoring"))

	addr := net.JoinHostPort("", strconv.Itoa(port))
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", sl.Err(err))
		return
	}

	handler := NewMonitoringHandler(log, reg, db)
	if err = serve(ctx, log, lis, handler, "Monitoring server running at http://localhost:%s/"); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", sl.Err(err))
	}
}
