package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subh-a-dip/cyber-tic-tac-toe/internal/metrics"
)

// MetricsHandler exposes request counters on the admin listener
type MetricsHandler struct {
	metrics *metrics.Metrics
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(metrics *metrics.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// GetMetrics handles GET /metrics
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetSnapshot())
}

// Health handles GET /healthz
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
