package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/common/middleware"
	"github.com/prepforge/examprep-backend/internal/subject/models"
	"github.com/prepforge/examprep-backend/internal/subject/services"
)

type SubjectHandler struct {
	subjects *services.SubjectService
}

func NewSubjectHandler(subjects *services.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

// ListSubjects returns the subject catalog with topics.
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.subjects.ListSubjects(c.Request.Context())
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, subjects)
}

// GetSubject returns a single subject by id.
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid subject id", c.Param("id")))
		return
	}

	subject, err := h.subjects.GetSubject(c.Request.Context(), uint(id))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, subject)
}

// SelectSubjects sets the current user's subject selection.
func (h *SubjectHandler) SelectSubjects(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	var req models.SelectSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid request body", err.Error()))
		return
	}

	if err := h.subjects.SelectSubjects(c.Request.Context(), userID, req.SubjectIDs); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, gin.H{"subject_ids": req.SubjectIDs})
}
