package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "comment_service"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Storage
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBConnectionsMax   prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec

	// Outbound calls to the auth and notification services
	ExternalAPIRequestDuration *prometheus.HistogramVec
	ExternalAPIRequestsTotal   *prometheus.CounterVec
	ExternalAPIErrors          *prometheus.CounterVec

	// Comments
	CommentsTotal         prometheus.Gauge
	PostsTotal            prometheus.Gauge
	CommentCreatedTotal   prometheus.Counter
	CommentsRelinkedTotal prometheus.Counter
	EventsPublishedTotal  *prometheus.CounterVec

	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithLogger creates metrics on the default registry that report panics to logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Metrics{logger: logger}
	factory := promauto.With(registerer)
	m.registerHTTP(factory)
	m.registerStorage(factory)
	m.registerExternal(factory)
	m.registerComments(factory)
	return m
}

func (m *Metrics) registerHTTP(f promauto.Factory) {
	m.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "endpoint", "status"})

	m.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method", "endpoint"})
}

func (m *Metrics) registerStorage(f promauto.Factory) {
	m.DBConnectionsOpen = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "db_connections_open",
		Help:      "Current number of open database connections",
	})
	m.DBConnectionsInUse = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "db_connections_in_use",
		Help:      "Current number of in-use database connections",
	})
	m.DBConnectionsIdle = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "db_connections_idle",
		Help:      "Current number of idle database connections",
	})
	m.DBConnectionsMax = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "db_connections_max",
		Help:      "Maximum number of open database connections configured",
	})

	m.DBQueryDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "db_query_duration_seconds",
		Help:      "Storage operation duration in seconds, for SQL queries and Mongo commands",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"operation", "table"})

	m.DBQueryErrors = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "db_query_errors_total",
		Help:      "Total number of failed storage operations",
	}, []string{"operation", "table"})
}

func (m *Metrics) registerExternal(f promauto.Factory) {
	m.ExternalAPIRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "external_api_request_duration_seconds",
		Help:      "External API request duration in seconds",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"endpoint", "status"})

	m.ExternalAPIRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_api_requests_total",
		Help:      "Total number of external API requests",
	}, []string{"endpoint", "method", "status"})

	m.ExternalAPIErrors = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_api_errors_total",
		Help:      "Total number of external API errors",
	}, []string{"endpoint", "error_type"})
}

func (m *Metrics) registerComments(f promauto.Factory) {
	m.CommentsTotal = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of stored comments",
	})
	m.PostsTotal = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "posts_total",
		Help:      "Total number of stored posts",
	})
	m.CommentCreatedTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comment_created_total",
		Help:      "Total number of comment creation events",
	})
	m.CommentsRelinkedTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_relinked_total",
		Help:      "Total number of comment ids restored to their post by the relink job",
	})
	m.EventsPublishedTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of domain events handed to the broker",
	}, []string{"channel", "result"})
}

// safeExecute wraps metric operations with panic recovery
func (m *Metrics) safeExecute(operation string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Panic in metrics operation",
				zap.String("operation", operation),
				zap.Any("panic", r),
			)
		}
	}()
	fn()
}
