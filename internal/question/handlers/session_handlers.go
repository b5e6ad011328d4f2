package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/common/middleware"
	"github.com/prepforge/examprep-backend/internal/question/models"
	"github.com/prepforge/examprep-backend/internal/question/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// StartSession opens a practice session.
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid request body", err.Error()))
		return
	}

	session, err := h.sessions.StartSession(c.Request.Context(), userID, req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(201, session)
}

// FinishSession closes a session and returns its summary.
func (h *SessionHandler) FinishSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid session id", c.Param("id")))
		return
	}

	summary, err := h.sessions.FinishSession(c.Request.Context(), userID, uint(sessionID))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, summary)
}
