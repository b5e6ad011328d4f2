package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prepforge/examprep-backend/internal/common/errors"
	"github.com/prepforge/examprep-backend/internal/common/middleware"
	"github.com/prepforge/examprep-backend/internal/common/validation"
	"github.com/prepforge/examprep-backend/internal/flashcard/models"
	"github.com/prepforge/examprep-backend/internal/flashcard/services"
)

type FlashcardHandler struct {
	reviews *services.ReviewService
}

func NewFlashcardHandler(reviews *services.ReviewService) *FlashcardHandler {
	return &FlashcardHandler{reviews: reviews}
}

// DueForReview returns the user's due cards and pool stats.
func (h *FlashcardHandler) DueForReview(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.JSONErrorResponse(c, errors.InvalidInput("invalid limit", raw))
			return
		}
		if err := validation.ValidateIntRange(parsed, 1, 100); err != nil {
			middleware.JSONErrorResponse(c, errors.InvalidInput("invalid limit", err.Error()))
			return
		}
		limit = parsed
	}

	due, err := h.reviews.DueForReview(c.Request.Context(), userID, limit)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(200, due)
}

// Review records one review outcome for a card.
func (h *FlashcardHandler) Review(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing user"))
		return
	}

	cardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid flashcard id", c.Param("id")))
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidInput("invalid request body", err.Error()))
		return
	}

	review, err := h.reviews.Review(c.Request.Context(), userID, uint(cardID), req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(201, review)
}
