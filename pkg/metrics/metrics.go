package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec

	dbConnectionsOpen  *prometheus.GaugeVec
	dbConnectionsIdle  *prometheus.GaugeVec
	dbConnectionsInUse *prometheus.GaugeVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{}),

		dbConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{}),

		dbConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of in-use database connections",
			ConstLabels: constLabels,
		}, []string{}),
	}
}

// ObserveHTTPRequest фиксирует завершённый HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный SQL запрос
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет gauge-метрики connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbConnectionsOpen.WithLabelValues().Set(float64(stats.OpenConnections))
	m.dbConnectionsIdle.WithLabelValues().Set(float64(stats.Idle))
	m.dbConnectionsInUse.WithLabelValues().Set(float64(stats.InUse))
}
