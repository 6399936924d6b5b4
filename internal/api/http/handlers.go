package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/RootAccess/backend/internal/docstore"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/RootAccess/backend/internal/service"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/id"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/utils"
)

// Version is reported by the health endpoint
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	desktop   *service.Desktop
	metrics   *monitoring.Metrics
	publisher *docstore.Publisher
	breaker   *resilience.Breaker
	logger    *zap.Logger
}

// Option configures Handlers
type Option func(*Handlers)

// WithMetrics enables the metrics summary
func WithMetrics(m *monitoring.Metrics) Option {
	return func(h *Handlers) { h.metrics = m }
}

// WithDocstore reports document store delivery and breaker state
func WithDocstore(p *docstore.Publisher, b *resilience.Breaker) Option {
	return func(h *Handlers) {
		h.publisher = p
		h.breaker = b
	}
}

// NewHandlers creates a new handler set
func NewHandlers(desktop *service.Desktop, logger *zap.Logger, opts ...Option) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handlers{desktop: desktop, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/metrics/summary", h.MetricsSummary)
	r.POST("/logs", h.StreamLogs)

	r.GET("/catalog/apps", h.ListApps)
	r.GET("/catalog/commands", h.ListCommands)

	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions", h.ListSessions)
	r.GET("/sessions/:id", h.GetSession)
	r.DELETE("/sessions/:id", h.DeleteSession)
	r.POST("/sessions/:id/windows/:app/:op", h.WindowOp)
	r.POST("/sessions/:id/drag/:phase", h.Drag)
	r.POST("/sessions/:id/terminal", h.Terminal)
	r.POST("/sessions/:id/sync", h.Sync)
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	store := gin.H{"enabled": h.publisher != nil}
	if h.breaker != nil {
		store["breaker"] = h.breaker.State().String()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "rootaccess",
		"version":  Version,
		"sessions": h.desktop.Sessions().Stats(),
		"docstore": store,
	})
}

// MetricsSummary returns a JSON digest of the Prometheus metrics
func (h *Handlers) MetricsSummary(c *gin.Context) {
	out := gin.H{"sessions": h.desktop.Sessions().Stats()}
	if h.metrics != nil {
		out["metrics"] = h.metrics.Snapshot()
	}
	if h.publisher != nil {
		out["docstore"] = h.publisher.Stats()
	}
	c.JSON(http.StatusOK, out)
}

// ListApps lists the launcher catalog
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apps": h.desktop.Apps().List()})
}

// ListCommands lists the terminal command catalog
func (h *Handlers) ListCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"commands": h.desktop.Commands().Commands()})
}

// CreateSession starts a new desktop
func (h *Handlers) CreateSession(c *gin.Context) {
	s := h.desktop.Sessions().Create()
	c.JSON(http.StatusCreated, s.Snapshot())
}

// ListSessions lists session metadata
func (h *Handlers) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sessions": h.desktop.Sessions().List(),
		"stats":    h.desktop.Sessions().Stats(),
	})
}

// GetSession returns a full snapshot
func (h *Handlers) GetSession(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	s, err := h.desktop.Sessions().Get(sid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// DeleteSession ends a session
func (h *Handlers) DeleteSession(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.desktop.Sessions().Delete(sid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": sid})
}

// WindowOp applies open, close, minimize, maximize or focus
func (h *Handlers) WindowOp(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	op := service.WindowOp(c.Param("op"))
	key := types.AppKey(c.Param("app"))

	var vp *types.Viewport
	if op == service.OpMaximize {
		var body types.Viewport
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
		vp = &body
	}

	snap, err := h.desktop.Window(sid, op, key, vp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Drag applies one drag phase
func (h *Handlers) Drag(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	phase := service.DragPhase(c.Param("phase"))

	var req types.PointerRequest
	if phase != service.DragEnd {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	snap, err := h.desktop.Drag(sid, phase, req.App, req.X, req.Y)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Terminal submits one line to the session's command engine
func (h *Handlers) Terminal(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	var req types.TerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	snap, result, err := h.desktop.Exec(c.Request.Context(), sid, req.Line)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "snapshot": snap})
}

// Sync replaces local resources with the document store's values
func (h *Handlers) Sync(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	snap, err := h.desktop.Sync(c.Request.Context(), sid)
	if err != nil {
		h.logger.Warn("Sync failed", zap.String("session_id", sid.String()), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// sessionID validates the :id path parameter, writing a 400 on failure
func sessionID(c *gin.Context) (id.SessionID, bool) {
	raw := c.Param("id")
	if err := utils.ValidateID(raw, "session id", true); err != nil {
		badRequest(c, err)
		return "", false
	}
	return id.SessionID(raw), true
}
