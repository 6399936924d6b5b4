package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/RootAccess/backend/internal/docstore"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/contract"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/session"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/window"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/RootAccess/backend/internal/service"
)

// StatusFor maps a service error to an HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, docstore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, window.ErrUnknownApp), errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, contract.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, resilience.ErrCircuitOpen),
		errors.Is(err, resilience.ErrTooManyRequests),
		errors.Is(err, service.ErrSyncDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, docstore.ErrRemote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err and attaches it to the context for the request logger
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
