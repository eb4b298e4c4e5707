package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transfer metrics
	TransactionsCreated prometheus.Counter
	TransactionsFailed  *prometheus.CounterVec
	TransferDuration    prometheus.Histogram
	TransferAmount      prometheus.Histogram
	FeesCollected       prometheus.Counter

	// History metrics
	HistoryReads       *prometheus.CounterVec
	DetailCacheHits    prometheus.Counter
	DetailCacheMiss    prometheus.Counter
	TransactionsHidden prometheus.Counter

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bank_transactions_created_total",
			Help: "Total number of transactions committed",
		}),
		TransactionsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_transactions_failed_total",
				Help: "Total number of failed transfer attempts by cause",
			},
			[]string{"cause"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bank_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bank_transfer_amount",
			Help:    "Transfer amounts in minor currency units",
			Buckets: []float64{1000, 10000, 100000, 1000000, 10000000, 100000000},
		}),
		FeesCollected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bank_fees_collected_total",
			Help: "Total fees collected in minor currency units",
		}),

		HistoryReads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_history_reads_total",
				Help: "Total history read operations by kind",
			},
			[]string{"kind"},
		),
		DetailCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bank_detail_cache_hits_total",
			Help: "Total detail view cache hits",
		}),
		DetailCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bank_detail_cache_misses_total",
			Help: "Total detail view cache misses",
		}),
		TransactionsHidden: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bank_transactions_hidden_total",
			Help: "Total transactions soft-deleted from history views",
		}),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bank_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
	}
}
