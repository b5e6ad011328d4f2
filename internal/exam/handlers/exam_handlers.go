package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/common/middleware"
	"github.com/prepforge/examprep-backend/internal/exam/models"
	"github.com/prepforge/examprep-backend/internal/exam/services"
)

type ExamHandler struct {
	exams *services.ExamService
}

func NewExamHandler(exams *services.ExamService) *ExamHandler {
	return &ExamHandler{exams: exams}
}

// CreateExam assembles and starts a mock exam.
func (h *ExamHandler) CreateExam(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	var req models.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid request body", err.Error()))
		return
	}

	exam, err := h.exams.CreateExam(c.Request.Context(), userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(201, exam)
}

// Grade scores a submitted answer sheet.
func (h *ExamHandler) Grade(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	examID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid exam id", c.Param("id")))
		return
	}

	var req models.GradeExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid request body", err.Error()))
		return
	}

	graded, err := h.exams.Grade(c.Request.Context(), uint(examID), userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, graded)
}

// Resume reports answered count and remaining time for an exam.
func (h *ExamHandler) Resume(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	examID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid exam id", c.Param("id")))
		return
	}

	state, err := h.exams.Resume(c.Request.Context(), uint(examID), userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, state)
}
