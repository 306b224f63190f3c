package handler

import (
	"net/http"

	"github.com/aitoolhub/backend/internal/service"
	"github.com/aitoolhub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

type SubmitReviewRequest struct {
	Rating  float64 `json:"rating" binding:"required"`
	Comment string  `json:"comment"`
}

// Submit files a review for a tool in pending status. The submitter is the
// authenticated identity, not a request field.
// POST /api/reviews/:toolId (authenticated)
func (h *ReviewHandler) Submit(c *gin.Context) {
	toolID, ok := parseIDParam(c, "toolId")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Submit review request parsing failed",
			zap.Int64("tool_id", toolID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	username := c.GetString("username")

	review, err := h.reviewService.Submit(toolID, req.Rating, req.Comment, username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review submitted",
		"id":      review.ID,
	})
}

// ListApproved returns the publicly visible reviews for a tool.
// GET /api/reviews/:toolId
func (h *ReviewHandler) ListApproved(c *gin.Context) {
	toolID, ok := parseIDParam(c, "toolId")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListApprovedForTool(toolID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
