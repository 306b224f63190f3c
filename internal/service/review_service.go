package service

import (
	"fmt"
	"math"
	"time"

	"github.com/aitoolhub/backend/internal/apperr"
	"github.com/aitoolhub/backend/internal/models"
	"github.com/aitoolhub/backend/internal/repository"
	"github.com/aitoolhub/backend/pkg/logger"
	"go.uber.org/zap"
)

// RatingSummary is the query-time aggregate over a tool's approved reviews.
// A zero summary means "no approved reviews yet", not a real zero rating.
type RatingSummary struct {
	Average float64 `json:"avgRating"`
	Count   int     `json:"reviewCount"`
}

// ReviewService owns the review lifecycle: submission into pending, admin
// moderation, and the approved-only aggregation every listing reads.
type ReviewService struct {
	reviewRepo *repository.ReviewRepository
	counters   *repository.CounterRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, counters *repository.CounterRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		counters:   counters,
	}
}

// Submit persists a new review in pending status under a freshly allocated
// ID. Any authenticated identity may submit; tool existence is deliberately
// not checked here, matching the public endpoint's behavior.
func (s *ReviewService) Submit(toolID int64, rating float64, comment, username string) (*models.Review, error) {
	id, err := s.counters.Next(models.NamespaceReviews)
	if err != nil {
		logger.Log.Error("Failed to allocate review id", zap.Error(err))
		return nil, err
	}

	review := &models.Review{
		ID:        id,
		ToolID:    toolID,
		Rating:    rating,
		Comment:   comment,
		Username:  username,
		Status:    models.ReviewPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.reviewRepo.CreateReview(review); err != nil {
		logger.Log.Error("Failed to create review",
			zap.Int64("review_id", id),
			zap.Int64("tool_id", toolID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	logger.Log.Info("Review submitted",
		zap.Int64("review_id", id),
		zap.Int64("tool_id", toolID),
		zap.String("username", username),
	)

	return review, nil
}

// GetByID returns the review or NotFound.
func (s *ReviewService) GetByID(id int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetReviewByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if review == nil {
		return nil, fmt.Errorf("%w: review %d", apperr.ErrNotFound, id)
	}
	return review, nil
}

// ListPending returns every review awaiting moderation.
func (s *ReviewService) ListPending() ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByStatus(models.ReviewPending)
	if err != nil {
		logger.Log.Error("Failed to list pending reviews", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	return reviews, nil
}

// ListApprovedForTool returns the publicly visible reviews for a tool.
func (s *ReviewService) ListApprovedForTool(toolID int64) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListApprovedForTool(toolID)
	if err != nil {
		logger.Log.Error("Failed to list approved reviews",
			zap.Int64("tool_id", toolID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	return reviews, nil
}

// SetStatus overwrites a review's moderation status. Re-applying a status or
// re-transitioning a terminal one is allowed; targeting a missing review is
// a quiet no-op that still reports success. Only the three recognized status
// values are accepted.
func (s *ReviewService) SetStatus(id int64, status models.ReviewStatus) error {
	if !status.Valid() {
		logger.Log.Warn("Rejecting unrecognized review status",
			zap.Int64("review_id", id),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("%w: unknown review status %q", apperr.ErrInvalidInput, status)
	}

	if err := s.reviewRepo.SetStatus(id, status); err != nil {
		logger.Log.Error("Failed to set review status",
			zap.Int64("review_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	logger.Log.Info("Review status set",
		zap.Int64("review_id", id),
		zap.String("status", string(status)),
	)

	return nil
}

// Aggregate computes the mean rating and count over the tool's approved
// reviews, fresh on every call. The mean is rounded to one decimal; with no
// approved reviews the summary is exactly {0, 0}.
func (s *ReviewService) Aggregate(toolID int64) (RatingSummary, error) {
	reviews, err := s.ListApprovedForTool(toolID)
	if err != nil {
		return RatingSummary{}, err
	}

	if len(reviews) == 0 {
		return RatingSummary{}, nil
	}

	var sum float64
	for _, review := range reviews {
		sum += review.Rating
	}
	avg := math.Round(sum/float64(len(reviews))*10) / 10

	return RatingSummary{Average: avg, Count: len(reviews)}, nil
}
