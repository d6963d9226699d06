package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether the MongoDB primary answers a ping.
type HealthChecker struct {
	db      DBPinger
	timeout time.Duration
	log     *slog.Logger
}

func NewHealthChecker(db DBPinger, log *slog.Logger) *HealthChecker {
	pingTO := 2
	return &HealthChecker{
		db:      db,
		timeout: time.Duration(pingTO) * time.Second,
		log:     log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	status := make(map[string]string)
	overallStatus := http.StatusOK

	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		status["database"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: DB ping", "error", err)
	} else {
		status["database"] = "ok"
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err := json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
