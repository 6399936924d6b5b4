package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics on a private registry
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Desktop metrics
	WindowOps *prometheus.CounterVec
	Commands  *prometheus.CounterVec

	// Session metrics
	SessionsActive prometheus.Gauge
	SessionEvents  *prometheus.CounterVec

	// Document store metrics
	DocstoreCalls    *prometheus.CounterVec
	DocstoreDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for the JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	ActiveSessions    int64   `json:"active_sessions"`
	ActiveConnections int64   `json:"active_connections"`
	CommandsExecuted  int64   `json:"commands_executed"`
	WindowOps         int64   `json:"window_ops"`
	AvgLatencyMs      float64 `json:"avg_latency_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a metrics collector with its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rootaccess_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rootaccess_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rootaccess_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "route"},
		),

		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rootaccess_window_operations_total",
				Help: "Window manager operations by kind",
			},
			[]string{"op"},
		),
		Commands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rootaccess_terminal_commands_total",
				Help: "Terminal inputs by command and outcome",
			},
			[]string{"command", "outcome"},
		),

		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rootaccess_sessions_active",
				Help: "Number of live sessions",
			},
		),
		SessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rootaccess_session_events_total",
				Help: "Session lifecycle events",
			},
			[]string{"event"},
		),

		DocstoreCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rootaccess_docstore_calls_total",
				Help: "Document store calls by operation and status",
			},
			[]string{"op", "status"},
		),
		DocstoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rootaccess_docstore_duration_seconds",
				Help:    "Document store call duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"op"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rootaccess_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rootaccess_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "rootaccess_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, route).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordWindowOp records a window manager operation
func (m *Metrics) RecordWindowOp(op string) {
	m.WindowOps.WithLabelValues(op).Inc()
	m.mu.Lock()
	m.snapshot.WindowOps++
	m.mu.Unlock()
}

// RecordCommand records a terminal input outcome. Inputs that name no
// command are labelled "-".
func (m *Metrics) RecordCommand(commandID, outcome string) {
	if commandID == "" {
		commandID = "-"
	}
	m.Commands.WithLabelValues(commandID, outcome).Inc()
	if outcome == "executed" {
		m.mu.Lock()
		m.snapshot.CommandsExecuted++
		m.mu.Unlock()
	}
}

// SetActiveSessions sets the number of live sessions
func (m *Metrics) SetActiveSessions(count int) {
	m.SessionsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveSessions = int64(count)
	m.mu.Unlock()
}

// RecordSessionEvent records a session lifecycle event
func (m *Metrics) RecordSessionEvent(event string) {
	m.SessionEvents.WithLabelValues(event).Inc()
}

// RecordDocstoreCall records a document store call
func (m *Metrics) RecordDocstoreCall(op, status string, duration time.Duration) {
	m.DocstoreCalls.WithLabelValues(op, status).Inc()
	m.DocstoreDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns current values for the JSON API
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgLatencyMs = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
