package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/common/middleware"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/internal/question/services"
)

type QuestionHandler struct {
	adaptive *services.AdaptiveService
	attempts *services.AttemptService
}

func NewQuestionHandler(adaptive *services.AdaptiveService, attempts *services.AttemptService) *QuestionHandler {
	return &QuestionHandler{adaptive: adaptive, attempts: attempts}
}

// SelectQuestions returns the next adaptive practice batch.
func (h *QuestionHandler) SelectQuestions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	var req models.SelectQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid request body", err.Error()))
		return
	}

	questions, err := h.adaptive.SelectQuestions(c.Request.Context(), userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, gin.H{"questions": questions, "count": len(questions)})
}

// SubmitAnswer grades one answer submission.
func (h *QuestionHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	var req models.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid request body", err.Error()))
		return
	}

	result, err := h.attempts.SubmitAnswer(c.Request.Context(), userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(201, result)
}
