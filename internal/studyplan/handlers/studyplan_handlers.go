package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/common/middleware"
	"github.com/prepforge/examprep-backend/internal/studyplan/services"
)

type StudyPlanHandler struct {
	plans *services.StudyPlanService
}

func NewStudyPlanHandler(plans *services.StudyPlanService) *StudyPlanHandler {
	return &StudyPlanHandler{plans: plans}
}

// DailyPlan generates today's recommended study plan.
func (h *StudyPlanHandler) DailyPlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	plan, err := h.plans.GenerateDailyPlan(c.Request.Context(), userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, plan)
}
