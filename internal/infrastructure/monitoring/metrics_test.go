package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue returns the counter in family name whose label values equal
// values in order, or zero when absent
func counterValue(t *testing.T, m *Metrics, name string, values ...string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := metric.GetLabel()
			if len(labels) != len(values) {
				continue
			}
			match := true
			for i, l := range labels {
				if l.GetValue() != values[i] {
					match = false
					break
				}
			}
			if match {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetricsInstancesAreIndependent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordWindowOp("open")

	assert.Equal(t, float64(1), counterValue(t, a, "rootaccess_window_operations_total", "open"))
	assert.Equal(t, float64(0), counterValue(t, b, "rootaccess_window_operations_total", "open"))
}

func TestRecordCommandLabels(t *testing.T) {
	m := NewMetrics()

	m.RecordCommand("scan.node", "executed")
	m.RecordCommand("", "help")

	assert.Equal(t, float64(1), counterValue(t, m, "rootaccess_terminal_commands_total", "scan.node", "executed"))
	assert.Equal(t, float64(1), counterValue(t, m, "rootaccess_terminal_commands_total", "-", "help"))
	assert.Equal(t, int64(1), m.Snapshot().CommandsExecuted)
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()

	m.SetActiveSessions(3)
	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()
	m.RecordHTTPRequest("GET", "/health", "200", 10*time.Millisecond, 20)
	m.RecordHTTPRequest("GET", "/sessions/:id", "404", 30*time.Millisecond, 20)

	s := m.Snapshot()
	assert.Equal(t, int64(3), s.ActiveSessions)
	assert.Equal(t, int64(1), s.ActiveConnections)
	assert.Equal(t, int64(2), s.TotalRequests)
	assert.Equal(t, int64(1), s.TotalErrors)
	assert.InDelta(t, 20.0, s.AvgLatencyMs, 0.001)
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/sessions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/sess_abc", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, float64(1), counterValue(t, m, "rootaccess_http_requests_total", "GET", "/sessions/:id", "200"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rootaccess_http_requests_total")
	assert.Contains(t, w.Body.String(), "rootaccess_uptime_seconds")
}
