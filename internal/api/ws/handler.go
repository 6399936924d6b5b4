package ws

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/session"
	"github.com/GriffinCanCode/RootAccess/backend/internal/service"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/id"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/utils"
)

// Message types
const (
	MsgPing      = "ping"
	MsgPong      = "pong"
	MsgSnapshot  = "snapshot"
	MsgError     = "error"
	MsgExec      = "exec"
	MsgDragBegin = "drag_begin"
	MsgDragMove  = "drag_move"
	MsgDragEnd   = "drag_end"
)

const (
	maxMessageSize     = 4096
	writeWait          = 10 * time.Second
	defaultIdleTimeout = 10 * time.Minute
)

// Recorder receives WebSocket metrics
type Recorder interface {
	IncWSConnections()
	DecWSConnections()
	RecordWSMessage(direction, msgType string)
}

type nopRecorder struct{}

func (nopRecorder) IncWSConnections() {}
func (nopRecorder) DecWSConnections() {}
func (nopRecorder) RecordWSMessage(string, string) {}

// Handler manages WebSocket connections
type Handler struct {
	desktop  *service.Desktop
	upgrader websocket.Upgrader
	origins  []string
	metrics  Recorder
	logger   *zap.Logger
	idle     time.Duration
}

// Option configures a Handler
type Option func(*Handler)

// WithMetrics records connection and message counts
func WithMetrics(r Recorder) Option {
	return func(h *Handler) { h.metrics = r }
}

// WithOrigins restricts browser origins; "*" or an empty list allows all
func WithOrigins(origins []string) Option {
	return func(h *Handler) { h.origins = origins }
}

// WithIdleTimeout closes connections silent for longer than d
func WithIdleTimeout(d time.Duration) Option {
	return func(h *Handler) { h.idle = d }
}

// NewHandler creates a new WebSocket handler
func NewHandler(desktop *service.Desktop, logger *zap.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		desktop: desktop,
		metrics: nopRecorder{},
		logger:  logger,
		idle:    defaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.origins) == 0 || slices.Contains(h.origins, "*") {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(h.origins, origin)
}

// HandleConnection upgrades GET /sessions/:id/stream
func (h *Handler) HandleConnection(c *gin.Context) {
	raw := c.Param("id")
	if err := utils.ValidateID(raw, "session id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sid := id.SessionID(raw)
	s, err := h.desktop.Sessions().Get(sid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	logger := h.logger.With(zap.String("conn_id", connID), zap.String("session_id", raw))
	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()
	logger.Info("WebSocket connected")

	conn.SetReadLimit(maxMessageSize)
	snap := s.Snapshot()
	if err := h.send(conn, types.WSReply{Type: MsgSnapshot, Snapshot: &snap}); err != nil {
		return
	}

	ctx := c.Request.Context()
	for {
		_ = conn.SetReadDeadline(time.Now().Add(h.idle))

		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("WebSocket read error", zap.Error(err))
			}
			break
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		reply, dispatchErr := h.dispatch(ctx, sid, msg)
		if dispatchErr != nil {
			reply = types.WSReply{Type: MsgError, Error: dispatchErr.Error()}
		}
		if err := h.send(conn, reply); err != nil {
			logger.Debug("WebSocket write error", zap.Error(err))
			break
		}
		// session deleted or evicted underneath the connection
		if errors.Is(dispatchErr, session.ErrNotFound) {
			break
		}
	}
	logger.Info("WebSocket disconnected")
}

// dispatch runs one client message against the session
func (h *Handler) dispatch(ctx context.Context, sid id.SessionID, msg types.WSMessage) (types.WSReply, error) {
	var (
		snap   types.SessionSnapshot
		result *types.CommandResult
		err    error
	)

	switch msg.Type {
	case MsgPing:
		return types.WSReply{Type: MsgPong}, nil
	case string(service.OpOpen), string(service.OpClose), string(service.OpMinimize),
		string(service.OpMaximize), string(service.OpFocus):
		snap, err = h.desktop.Window(sid, service.WindowOp(msg.Type), msg.App, msg.Viewport)
	case MsgDragBegin:
		snap, err = h.desktop.Drag(sid, service.DragBegin, msg.App, msg.X, msg.Y)
	case MsgDragMove:
		snap, err = h.desktop.Drag(sid, service.DragMove, "", msg.X, msg.Y)
	case MsgDragEnd:
		snap, err = h.desktop.Drag(sid, service.DragEnd, "", 0, 0)
	case MsgExec:
		var r types.CommandResult
		snap, r, err = h.desktop.Exec(ctx, sid, msg.Line)
		result = &r
	default:
		return types.WSReply{}, errors.New("unknown message type")
	}
	if err != nil {
		return types.WSReply{}, err
	}
	return types.WSReply{Type: MsgSnapshot, Snapshot: &snap, Result: result}, nil
}

func (h *Handler) send(conn *websocket.Conn, reply types.WSReply) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	h.metrics.RecordWSMessage("out", reply.Type)
	return conn.WriteJSON(reply)
}
