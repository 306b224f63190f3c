package handler

import (
	"net/http"
	"time"

	"github.com/aitoolhub/backend/internal/models"
	"github.com/aitoolhub/backend/internal/service"
	"github.com/aitoolhub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the moderation queue and dashboard stats. Every route
// here sits behind AuthMiddleware + AdminMiddleware.
type AdminHandler struct {
	reviewService *service.ReviewService
	statsService  *service.StatsService
}

func NewAdminHandler(reviewService *service.ReviewService, statsService *service.StatsService) *AdminHandler {
	return &AdminHandler{
		reviewService: reviewService,
		statsService:  statsService,
	}
}

// pendingReview is the normalized moderation-queue entry: a fixed field set
// regardless of anything else stored on the review.
type pendingReview struct {
	ID        int64               `json:"id"`
	ToolID    int64               `json:"toolId"`
	Rating    float64             `json:"rating"`
	Comment   string              `json:"comment"`
	Username  string              `json:"username"`
	Status    models.ReviewStatus `json:"status"`
	CreatedAt string              `json:"createdAt"`
}

// PendingReviews returns every review awaiting moderation.
// GET /api/admin/reviews/pending
func (h *AdminHandler) PendingReviews(c *gin.Context) {
	logger.Log.Info("Admin fetching pending reviews",
		zap.String("admin", c.GetString("username")),
	)

	reviews, err := h.reviewService.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]pendingReview, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, pendingReview{
			ID:        review.ID,
			ToolID:    review.ToolID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			Username:  review.Username,
			Status:    review.Status,
			CreatedAt: review.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, result)
}

// SetReviewStatus overwrites a review's moderation status. The target status
// comes from the status query parameter; anything outside the three
// recognized values is rejected, and a missing review ID is still a success.
// PUT /api/admin/reviews/:id
func (h *AdminHandler) SetReviewStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status := models.ReviewStatus(c.Query("status"))

	logger.Log.Info("Admin setting review status",
		zap.String("admin", c.GetString("username")),
		zap.Int64("review_id", id),
		zap.String("status", string(status)),
	)

	if err := h.reviewService.SetStatus(id, status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated",
	})
}

// Stats returns user/tool/review totals for the dashboard.
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Totals()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
