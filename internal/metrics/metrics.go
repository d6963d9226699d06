package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exposed by the service.
// It includes a counter of schema enforcements by outcome, a histogram of their duration,
// a histogram of database command latency and a gauge tracking the startup state.
type Metrics struct {
	Enforcements        *prometheus.CounterVec
	EnforcementDuration prometheus.Histogram
	DBQueryDuration     *prometheus.HistogramVec
	StartupState        *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance registered on reg.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Enforcements: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ont_schema_enforcements_total",
			Help: "Total schema enforcements by outcome: modified, created or failed.",
		}, []string{"outcome"}),
		EnforcementDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "ont_schema_enforcement_duration_seconds",
			Help:    "Measures how long it takes to apply the collection validator.",
			Buckets: prometheus.DefBuckets,
		}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ont_db_query_duration_seconds",
			Help:    "Duration of database commands.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'coll_mod', 'create_collection'
		StartupState: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "ont_startup_state",
			Help: "Set to 1 for the current bootstrap state, 0 for the others.",
		}, []string{"state"}),
	}

	metrics.Enforcements.WithLabelValues("modified")
	metrics.Enforcements.WithLabelValues("created")
	metrics.Enforcements.WithLabelValues("failed")

	return metrics
}
