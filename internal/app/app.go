package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/UnknownOlympus/ont/internal/config"
	"github.com/UnknownOlympus/ont/internal/lib/logger/sl"
	"github.com/UnknownOlympus/ont/internal/metrics"
	"github.com/UnknownOlympus/ont/internal/repository"
	"github.com/UnknownOlympus/ont/internal/schema"
	"github.com/UnknownOlympus/ont/internal/server"
)

// State is a step of the startup sequence.
type State int

const (
	StateUnconfigured State = iota
	StateConnecting
	StateSchemaEnforcing
	StateListening
	StateFailed
)

var stateNames = map[State]string{
	StateUnconfigured:    "unconfigured",
	StateConnecting:      "connecting",
	StateSchemaEnforcing: "schema_enforcing",
	StateListening:       "listening",
	StateFailed:          "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Store is the database connection the bootstrap owns.
type Store interface {
	Database(name string) schema.Database
	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// Connector opens a Store for the connection string.
type Connector func(ctx context.Context, uri string, timeout time.Duration) (Store, error)

// Listener serves handler on addr until ctx is cancelled.
type Listener func(ctx context.Context, log *slog.Logger, addr string, handler http.Handler) error

type Option func(*Bootstrap)

// WithConnector replaces the MongoDB connector.
func WithConnector(connect Connector) Option {
	return func(b *Bootstrap) { b.connect = connect }
}

// WithListener replaces the HTTP listener.
func WithListener(listen Listener) Option {
	return func(b *Bootstrap) { b.listen = listen }
}

// OnReady registers a callback invoked with the store once the schema is enforced,
// right before the listener starts. It is not called when startup fails earlier.
func OnReady(fn func(ctx context.Context, store Store)) Option {
	return func(b *Bootstrap) { b.onReady = fn }
}

// Bootstrap runs the startup sequence: connect, enforce the employees schema, then listen.
type Bootstrap struct {
	log     *slog.Logger
	cfg     *config.Config
	metrics *metrics.Metrics
	connect Connector
	listen  Listener
	onReady func(ctx context.Context, store Store)

	mu    sync.RWMutex
	state State
}

func New(log *slog.Logger, cfg *config.Config, metrics *metrics.Metrics, opts ...Option) *Bootstrap {
	bootstrap := &Bootstrap{
		log:     log,
		cfg:     cfg,
		metrics: metrics,
		connect: connectMongo(metrics),
		listen:  server.Listen,
	}
	for _, opt := range opts {
		opt(bootstrap)
	}
	bootstrap.setState(StateUnconfigured)

	return bootstrap
}

// State reports the current startup state.
func (b *Bootstrap) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.state
}

func (b *Bootstrap) setState(state State) {
	b.mu.Lock()
	b.state = state
	b.mu.Unlock()

	for s := range stateNames {
		value := 0.0
		if s == state {
			value = 1
		}
		b.metrics.StartupState.WithLabelValues(s.String()).Set(value)
	}
}

// Run connects to the database, enforces the employees validator and then serves the API
// until ctx is cancelled. The listener is never started when an earlier step fails;
// the error is returned and the caller decides how the process ends.
func (b *Bootstrap) Run(ctx context.Context) error {
	const opn = "Bootstrap.Run"
	log := sl.Op(b.log, opn, "bootstrap")

	b.setState(StateConnecting)
	log.InfoContext(ctx, "Connecting to MongoDB")

	store, err := b.connect(ctx, b.cfg.AtlasURI, b.cfg.ConnectTimeout)
	if err != nil {
		return b.fail(ctx, log, fmt.Errorf("failed to connect to database: %w", err))
	}
	defer func() {
		disconnectTO := 5
		dctx, cancel := context.WithTimeout(context.Background(), time.Duration(disconnectTO)*time.Second)
		defer cancel()
		if err := store.Disconnect(dctx); err != nil {
			log.WarnContext(ctx, "Failed to disconnect from MongoDB", sl.Err(err))
		}
	}()

	b.setState(StateSchemaEnforcing)
	enforcer := schema.NewEnforcer(b.log, store.Database(schema.DatabaseName), b.metrics)
	if _, err = enforcer.EnforceEmployees(ctx); err != nil {
		return b.fail(ctx, log, fmt.Errorf("failed to enforce schema: %w", err))
	}

	if b.onReady != nil {
		b.onReady(ctx, store)
	}

	b.setState(StateListening)
	if err = b.listen(ctx, b.log, b.cfg.HTTPAddr, server.NewRouter(b.log)); err != nil {
		return b.fail(ctx, log, fmt.Errorf("failed to serve HTTP: %w", err))
	}

	return nil
}

func (b *Bootstrap) fail(ctx context.Context, log *slog.Logger, err error) error {
	b.setState(StateFailed)
	log.ErrorContext(ctx, "Startup failed", sl.Err(err))

	return err
}

// mongoStore adapts repository.Client to Store.
type mongoStore struct {
	*repository.Client
	metrics *metrics.Metrics
}

func (s mongoStore) Database(name string) schema.Database {
	return repository.NewSchemaRepository(s.Client.Database(name), s.metrics)
}

func connectMongo(m *metrics.Metrics) Connector {
	return func(ctx context.Context, uri string, timeout time.Duration) (Store, error) {
		client, err := repository.NewDatabase(ctx, uri, timeout)
		if err != nil {
			return nil, err
		}
		return mongoStore{Client: client, metrics: m}, nil
	}
}
