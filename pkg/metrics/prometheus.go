// Package metrics provides Prometheus metrics for the proctord scheduler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Command metrics - every mutation flows through the reducer
	commandsApplied    *prometheus.CounterVec
	validationFailures prometheus.Counter

	// Persistence metrics - write-through snapshot saves
	persistenceSaves        prometheus.Counter
	persistenceErrors       prometheus.Counter
	persistenceSaveDuration prometheus.Histogram
	snapshotBytes           prometheus.Gauge

	// Read-path metrics
	availabilityScans  prometheus.Counter
	leaderboardQueries prometheus.Counter

	// Entity gauges - business scale
	proctorCount    prometheus.Gauge
	volunteerCount  prometheus.Gauge
	examCount       prometheus.Gauge
	eventCount      prometheus.Gauge
	assignmentCount prometheus.Gauge

	// Admin session metrics
	adminLogins        prometheus.Counter
	adminLoginFailures prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "proctord",
		subsystem:        "scheduler",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.commandsApplied = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "commands_applied_total",
			Help:      "Total number of commands applied to the snapshot, by command",
		},
		[]string{"command"},
	)

	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Total number of commands rejected before reaching the reducer",
	})

	m.persistenceSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persistence_saves_total",
		Help:      "Total number of snapshot write-through saves",
	})

	m.persistenceErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persistence_errors_total",
		Help:      "Total number of snapshot save or load failures (non-fatal)",
	})

	m.persistenceSaveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persistence_save_duration_milliseconds",
		Help:      "Histogram of snapshot save duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_bytes",
		Help:      "Size of the last serialized snapshot in bytes",
	})

	m.availabilityScans = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "availability_scans_total",
		Help:      "Total number of availability queries answered",
	})

	m.leaderboardQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_queries_total",
		Help:      "Total number of leaderboard queries answered",
	})

	m.proctorCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "proctors",
		Help:      "Current number of registered proctors",
	})

	m.volunteerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "volunteers",
		Help:      "Current number of registered volunteers",
	})

	m.examCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exams",
		Help:      "Current number of exams",
	})

	m.eventCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events",
		Help:      "Current number of events",
	})

	m.assignmentCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "slot_assignments",
		Help:      "Current number of slot assignments across all containers",
	})

	m.adminLogins = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "admin_logins_total",
		Help:      "Total number of successful admin logins",
	})

	m.adminLoginFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "admin_login_failures_total",
		Help:      "Total number of rejected admin login attempts",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the registry backing the global manager, for serving
// scrapes.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordCommand counts one applied command.
func RecordCommand(command string) {
	globalManager.commandsApplied.WithLabelValues(command).Inc()
}

// RecordValidationFailure counts one rejected command.
func RecordValidationFailure() {
	globalManager.validationFailures.Inc()
}

// RecordPersistenceSave counts one completed save and its duration.
func RecordPersistenceSave(durationMs float64) {
	globalManager.persistenceSaves.Inc()
	globalManager.persistenceSaveDuration.Observe(durationMs)
}

// RecordPersistenceError counts one non-fatal persistence failure.
func RecordPersistenceError() {
	globalManager.persistenceErrors.Inc()
}

// UpdateSnapshotBytes records the serialized snapshot size.
func UpdateSnapshotBytes(n int) {
	globalManager.snapshotBytes.Set(float64(n))
}

// RecordAvailabilityScan counts one availability query.
func RecordAvailabilityScan() {
	globalManager.availabilityScans.Inc()
}

// RecordLeaderboardQuery counts one leaderboard query.
func RecordLeaderboardQuery() {
	globalManager.leaderboardQueries.Inc()
}

// UpdateEntityCounts refreshes the business-scale gauges.
func UpdateEntityCounts(proctors, volunteers, exams, events, assignments int) {
	globalManager.proctorCount.Set(float64(proctors))
	globalManager.volunteerCount.Set(float64(volunteers))
	globalManager.examCount.Set(float64(exams))
	globalManager.eventCount.Set(float64(events))
	globalManager.assignmentCount.Set(float64(assignments))
}

// RecordAdminLogin counts an admin login attempt by outcome.
func RecordAdminLogin(success bool) {
	if success {
		globalManager.adminLogins.Inc()
		return
	}
	globalManager.adminLoginFailures.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
