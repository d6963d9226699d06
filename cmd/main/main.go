package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/UnknownOlympus/ont/internal/app"
	"github.com/UnknownOlympus/ont/internal/config"
	"github.com/UnknownOlympus/ont/internal/lib/logger"
	"github.com/UnknownOlympus/ont/internal/metrics"
	"github.com/UnknownOlympus/ont/internal/server"
)

// main is the entry point of the application.
func main() {
	os.Exit(exitCode(run(os.Stderr)))
}

func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

// run wires the application together. It returns an error instead of exiting
// so deferred cleanup runs before main decides the exit code.
func run(stderr io.Writer) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingAtlasURI) {
			fmt.Fprintln(stderr, "No ATLAS_URI provided")
		} else {
			fmt.Fprintln(stderr, err)
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Setup(cfg.Env, os.Stdout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	var wgr sync.WaitGroup
	opts := []app.Option{}
	if cfg.MonitoringPort > 0 {
		opts = append(opts, app.OnReady(func(ctx context.Context, store app.Store) {
			wgr.Add(1)
			go func() {
				defer wgr.Done()
				server.StartMonitoringServer(ctx, log, reg, store, cfg.MonitoringPort)
			}()
		}))
	}

	// startup failures are logged by the bootstrap itself
	err = app.New(log, cfg, appMetrics, opts...).Run(ctx)

	stop()
	wgr.Wait()

	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Application stopped gracefully...")

	return nil
}
