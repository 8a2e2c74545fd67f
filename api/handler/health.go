package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siherrmann/ranker/api/dto"
)

// HealthHandler reports service liveness
type HealthHandler struct {
	version   string
	startTime time.Time
	graphs    []string
}

// NewHealthHandler creates a HealthHandler listing the served graphs
func NewHealthHandler(version string, graphs []string) *HealthHandler {
	graphs = slices.Clone(graphs)
	slices.Sort(graphs)
	return &HealthHandler{
		version:   version,
		startTime: time.Now(),
		graphs:    graphs,
	}
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Graphs:  h.graphs,
	})
}
