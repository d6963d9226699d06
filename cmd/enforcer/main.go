package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/UnknownOlympus/ont/internal/config"
	"github.com/UnknownOlympus/ont/internal/lib/logger"
	"github.com/UnknownOlympus/ont/internal/metrics"
	"github.com/UnknownOlympus/ont/internal/repository"
	"github.com/UnknownOlympus/ont/internal/schema"
)

// main applies the employees validator once and exits, without starting the API.
func main() {
	_ = godotenv.Load()

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := repository.NewDatabase(ctx, cfg.AtlasURI, cfg.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	repo := repository.NewSchemaRepository(client.Database(schema.DatabaseName), appMetrics)
	outcome, err := schema.NewEnforcer(logger.Setup(cfg.Env, os.Stdout), repo, appMetrics).EnforceEmployees(ctx)
	if err != nil {
		return err
	}

	log.Printf("✅ Schema applied successfully (%s)", outcome)

	return nil
}
