package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxLogBatch bounds one client log request
const maxLogBatch = 100

// ClientLogEntry is one log line from the desktop front end
type ClientLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context"`
	Timestamp string                 `json:"timestamp"`
}

// ClientLogRequest is a batch of front end log entries
type ClientLogRequest struct {
	Source    string           `json:"source" binding:"required"`
	SessionID string           `json:"session_id"`
	Entries   []ClientLogEntry `json:"entries"`
}

// StreamLogs forwards front end logs into the server log
func (h *Handlers) StreamLogs(c *gin.Context) {
	var req ClientLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log request format"})
		return
	}
	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no log entries provided"})
		return
	}
	if len(req.Entries) > maxLogBatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d entries per request", maxLogBatch)})
		return
	}

	logger := h.logger.With(
		zap.String("source", req.Source),
		zap.String("session_id", req.SessionID),
	)
	for _, entry := range req.Entries {
		logClientEntry(logger, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"entries_received": len(req.Entries),
		"timestamp":        time.Now().Unix(),
	})
}

func logClientEntry(logger *zap.Logger, entry ClientLogEntry) {
	fields := make([]zap.Field, 0, len(entry.Context)+1)
	fields = append(fields, zap.String("client_timestamp", entry.Timestamp))

	for key, value := range entry.Context {
		switch v := value.(type) {
		case string:
			fields = append(fields, zap.String(key, v))
		case float64:
			fields = append(fields, zap.Float64(key, v))
		case bool:
			fields = append(fields, zap.Bool(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}

	switch entry.Level {
	case "error":
		logger.Error(entry.Message, fields...)
	case "warn":
		logger.Warn(entry.Message, fields...)
	case "debug", "verbose":
		logger.Debug(entry.Message, fields...)
	default:
		logger.Info(entry.Message, fields...)
	}
}
