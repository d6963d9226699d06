package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Listen serves handler on addr until ctx is cancelled, then shuts the server down gracefully.
// It returns nil after a clean shutdown and the listen error otherwise.
func Listen(ctx context.Context, log *slog.Logger, addr string, handler http.Handler) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return Serve(ctx, log, lis, handler)
}

// Serve is Listen on an already bound listener.
func Serve(ctx context.Context, log *slog.Logger, lis net.Listener, handler http.Handler) error {
	return serve(ctx, log, lis, handler, "Server running at http://localhost:%s/")
}

func serve(ctx context.Context, log *slog.Logger, lis net.Listener, handler http.Handler, banner string) error {
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()

	log.InfoContext(ctx, fmt.Sprintf(banner, port(lis.Addr())))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.InfoContext(ctx, "Server exited gracefully")

	return nil
}

func port(addr net.Addr) string {
	_, p, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}

	return p
}
