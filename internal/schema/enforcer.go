package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/UnknownOlympus/ont/internal/lib/logger/sl"
	"github.com/UnknownOlympus/ont/internal/metrics"
	"github.com/UnknownOlympus/ont/internal/repository"
)

// Outcome describes what an enforcement did to the collection.
type Outcome string

const (
	OutcomeModified Outcome = "modified"
	OutcomeCreated  Outcome = "created"
	OutcomeFailed   Outcome = "failed"
)

// Database applies validators to collections.
// CollMod must wrap repository.ErrNamespaceNotFound when the collection is missing.
type Database interface {
	CollMod(ctx context.Context, collection string, validator bson.D) error
	CreateCollection(ctx context.Context, collection string, validator bson.D) error
}

type Enforcer struct {
	log     *slog.Logger
	db      Database
	metrics *metrics.Metrics
}

func NewEnforcer(log *slog.Logger, db Database, metrics *metrics.Metrics) *Enforcer {
	return &Enforcer{log: log, db: db, metrics: metrics}
}

// Enforce makes sure collection exists and carries validator.
// An existing collection gets its validator replaced, a missing one is created with it.
// Any other failure is returned to the caller. Running it again converges to the same state.
func (e *Enforcer) Enforce(ctx context.Context, collection string, validator bson.D) (Outcome, error) {
	const opn = "Enforcer.Enforce"
	log := sl.Op(e.log, opn, "schema").With(slog.String("collection", collection))

	startTime := time.Now()
	outcome, err := e.enforce(ctx, log, collection, validator)
	e.metrics.EnforcementDuration.Observe(time.Since(startTime).Seconds())
	e.metrics.Enforcements.WithLabelValues(string(outcome)).Inc()

	if err != nil {
		log.ErrorContext(ctx, "Schema enforcement failed", sl.Err(err))
		return outcome, err
	}

	log.InfoContext(ctx, "Schema enforced", slog.String("outcome", string(outcome)))

	return outcome, nil
}

func (e *Enforcer) enforce(
	ctx context.Context,
	log *slog.Logger,
	collection string,
	validator bson.D,
) (Outcome, error) {
	log.DebugContext(ctx, "Applying validator to existing collection")

	err := e.db.CollMod(ctx, collection, validator)
	switch {
	case err == nil:
		return OutcomeModified, nil
	case errors.Is(err, repository.ErrNamespaceNotFound):
		log.InfoContext(ctx, "Collection does not exist, creating it with the validator")
		if err = e.db.CreateCollection(ctx, collection, validator); err != nil {
			return OutcomeFailed, fmt.Errorf("failed to create validated collection: %w", err)
		}
		return OutcomeCreated, nil
	default:
		return OutcomeFailed, fmt.Errorf("failed to apply validator: %w", err)
	}
}

// EnforceEmployees applies EmployeesValidator to the employees collection.
func (e *Enforcer) EnforceEmployees(ctx context.Context) (Outcome, error) {
	return e.Enforce(ctx, EmployeesCollection, EmployeesValidator())
}
