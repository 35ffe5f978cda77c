package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestSize     *prometheus.HistogramVec

	// Kitchen metrics
	generationsTotal   *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	shoppingLists      *prometheus.CounterVec
	calendarExports    prometheus.Counter
	calendarEvents     prometheus.Histogram
	settingsWrites     *prometheus.CounterVec

	errorsTotal *prometheus.CounterVec
}

// NewMetricsCollector creates a collector backed by its own registry
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &MetricsCollector{
		logger:   logger.Named("metrics"),
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		generationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chefaid_generations_total",
				Help: "Oracle requests by screen operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		generationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chefaid_generation_duration_seconds",
				Help:    "Oracle round trip time",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
			},
			[]string{"operation"},
		),
		shoppingLists: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chefaid_shopping_lists_total",
				Help: "Generated texts inspected for a shopping list",
			},
			[]string{"found"},
		),
		calendarExports: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chefaid_calendar_exports_total",
				Help: "Calendar documents exported",
			},
		),
		calendarEvents: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chefaid_calendar_events",
				Help:    "Events per exported calendar",
				Buckets: []float64{0, 1, 7, 14, 28, 35},
			},
		),
		settingsWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chefaid_settings_writes_total",
				Help: "Settings store writes by key",
			},
			[]string{"key"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chefaid_errors_total",
				Help: "Errors by component and code",
			},
			[]string{"component", "code"},
		),
	}
}

// HTTPMiddleware creates a Gin middleware for HTTP metrics collection
func (m *MetricsCollector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if c.Request.ContentLength > 0 {
			m.httpRequestSize.WithLabelValues(
				c.Request.Method,
				c.FullPath(),
			).Observe(float64(c.Request.ContentLength))
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, c.FullPath(), statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, c.FullPath(), statusCode).
			Observe(time.Since(start).Seconds())
	}
}

// GenerationCompleted records one oracle request
func (m *MetricsCollector) GenerationCompleted(operation, outcome string, duration time.Duration) {
	m.generationsTotal.WithLabelValues(operation, outcome).Inc()
	m.generationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ShoppingListInspected records whether generated text carried a shopping list
func (m *MetricsCollector) ShoppingListInspected(found bool) {
	m.shoppingLists.WithLabelValues(strconv.FormatBool(found)).Inc()
}

// CalendarExported records an exported calendar and its event count
func (m *MetricsCollector) CalendarExported(events int) {
	m.calendarExports.Inc()
	m.calendarEvents.Observe(float64(events))
}

// SettingWritten records a settings store write
func (m *MetricsCollector) SettingWritten(key string) {
	m.settingsWrites.WithLabelValues(key).Inc()
}

// RecordError counts an error by component and code
func (m *MetricsCollector) RecordError(component, code string) {
	m.errorsTotal.WithLabelValues(component, code).Inc()
}

// Registry exposes the underlying registry
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
