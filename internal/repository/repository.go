package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/ont/internal/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNamespaceNotFound reports that the target collection does not exist yet.
var ErrNamespaceNotFound = errors.New("namespace not found")

const (
	codeNamespaceNotFound = 26
	nameNamespaceNotFound = "NamespaceNotFound"
)

// Database is the subset of *mongo.Database the repository relies on.
type Database interface {
	RunCommand(ctx context.Context, runCommand any, opts ...*options.RunCmdOptions) *mongo.SingleResult
	CreateCollection(ctx context.Context, name string, opts ...*options.CreateCollectionOptions) error
}

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// NewSchemaRepository returns a repository that manages collection validators of db.
func NewSchemaRepository(db Database, metrics *metrics.Metrics) *Repository {
	return &Repository{db: db, metrics: metrics}
}

// CollMod replaces the validator of an existing collection.
// ErrNamespaceNotFound is returned, wrapped, when the collection does not exist.
func (r *Repository) CollMod(ctx context.Context, collection string, validator bson.D) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("coll_mod").Observe(duration)
	}()

	command := bson.D{
		{Key: "collMod", Value: collection},
		{Key: "validator", Value: validator},
	}

	if err := r.db.RunCommand(ctx, command).Err(); err != nil {
		return fmt.Errorf("failed to modify collection '%s': %w", collection, classify(err))
	}

	return nil
}

// CreateCollection creates the collection with validator applied from the start.
func (r *Repository) CreateCollection(ctx context.Context, collection string, validator bson.D) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("create_collection").Observe(duration)
	}()

	opts := options.CreateCollection().SetValidator(validator)
	if err := r.db.CreateCollection(ctx, collection, opts); err != nil {
		return fmt.Errorf("failed to create collection '%s': %w", collection, classify(err))
	}

	return nil
}

// classify maps server errors the callers branch on to sentinel errors.
// The driver error stays in the chain.
func classify(err error) error {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorCode(codeNamespaceNotFound) {
		return fmt.Errorf("%w: %w", ErrNamespaceNotFound, err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Name == nameNamespaceNotFound {
		return fmt.Errorf("%w: %w", ErrNamespaceNotFound, err)
	}

	return err
}
