package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-crafter/internal/journal"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the service and its journal are reachable
type HealthHandler struct {
	provider string
	journal  journal.Recorder
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(provider string, rec journal.Recorder) *HealthHandler {
	return &HealthHandler{provider: provider, journal: rec}
}

// Health answers 200 "ok", or 503 "degraded" when the journal cannot be reached
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status, code, journalStatus := "ok", http.StatusOK, h.journal.Driver()
	if err := h.journal.Ping(ctx); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
		journalStatus = h.journal.Driver() + ": " + err.Error()
	}

	c.JSON(code, gin.H{
		"status":   status,
		"provider": h.provider,
		"journal":  journalStatus,
	})
}
