package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prepforge/examprep-backend/internal/analytics/services"
	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/common/middleware"
	"github.com/prepforge/examprep-backend/internal/common/validation"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// WeakTopics returns the weak-topic ranking for the current user.
func (h *AnalyticsHandler) WeakTopics(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.JSONErrorResponse(c, errors.InvalidInput("invalid limit", raw))
			return
		}
		if err := validation.ValidateIntRange(parsed, 1, 50); err != nil {
			middleware.JSONErrorResponse(c, errors.InvalidInput("invalid limit", err.Error()))
			return
		}
		limit = parsed
	}

	topics, err := h.analytics.WeakTopics(c.Request.Context(), userID, limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, gin.H{"weak_topics": topics})
}

// SubjectAnalytics returns per-subject accuracy for comma-separated
// subject names. Unknown names are skipped.
func (h *AnalyticsHandler) SubjectAnalytics(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	raw := c.Query("subjects")
	if raw == "" {
		middleware.JSONErrorResponse(c, errors.InvalidInput("subjects query parameter is required", ""))
		return
	}
	names := strings.Split(raw, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	results, err := h.analytics.SubjectAnalytics(c.Request.Context(), userID, names)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, gin.H{"subjects": results})
}

// Overview returns dashboard headline stats.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	stats, err := h.analytics.Overview(c.Request.Context(), userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, stats)
}

// Streak returns the user's current daily streak.
func (h *AnalyticsHandler) Streak(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	count, err := h.analytics.CurrentStreak(c.Request.Context(), userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, gin.H{"current_streak": count})
}
