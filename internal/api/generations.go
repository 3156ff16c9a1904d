package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-crafter/internal/journal"
	"github.com/pageza/alchemorsel-crafter/internal/logger"
)

// GenerationsHandler exposes the generation journal
type GenerationsHandler struct {
	journal journal.Recorder
	logger  *zap.Logger
}

// NewGenerationsHandler creates a new GenerationsHandler instance
func NewGenerationsHandler(rec journal.Recorder, log *zap.Logger) *GenerationsHandler {
	return &GenerationsHandler{journal: rec, logger: log}
}

// RegisterRoutes mounts the journal routes on router
func (h *GenerationsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/generations", h.ListGenerations)
}

// ListGenerations returns the newest journal entries
func (h *GenerationsHandler) ListGenerations(c *gin.Context) {
	limit := journal.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = journal.ClampLimit(n)
	}

	entries, err := h.journal.Recent(c.Request.Context(), limit)
	if err != nil {
		logger.FromContext(c.Request.Context(), h.logger).Error("Failed to list generations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list generations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generations": entries,
		"count":       len(entries),
	})
}
