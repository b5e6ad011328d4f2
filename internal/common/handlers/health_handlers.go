package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prepforge/examprep-backend/internal/common/health"
)

type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

func (h *HealthHandler) Health(c *gin.Context) {
	report := h.checker.Check()
	status := 200
	if report.Status == health.StatusDown {
		status = 503
	}
	c.JSON(status, report)
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(200, gin.H{"status": "alive"})
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	report := h.checker.Check()
	if report.Database == health.StatusDown {
		c.JSON(503, gin.H{"status": "not ready"})
		return
	}
	c.JSON(200, gin.H{"status": "ready"})
}
