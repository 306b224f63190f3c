package repository

import (
	"github.com/aitoolhub/backend/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) CreateReview(review *models.Review) error {
	return r.db.Create(review).Error
}

// GetReviewByID returns nil, nil when no review exists with that ID.
func (r *ReviewRepository) GetReviewByID(id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ?", id).First(&review).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &review, nil
}

// ListApprovedForTool returns only reviews whose status is exactly approved.
// Pending and rejected reviews never leave this filter, whatever their
// rating; this is the aggregation engine's sole data source.
func (r *ReviewRepository) ListApprovedForTool(toolID int64) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := r.db.
		Where("tool_id = ? AND status = ?", toolID, models.ReviewApproved).
		Order("created_at DESC").
		Find(&reviews).Error

	return reviews, err
}

// ListByStatus returns all reviews currently in the given status.
func (r *ReviewRepository) ListByStatus(status models.ReviewStatus) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := r.db.
		Where("status = ?", status).
		Order("created_at").
		Find(&reviews).Error

	return reviews, err
}

// SetStatus unconditionally overwrites the status of the review with the
// given ID. Zero rows affected is not an error: re-applying the same status
// and targeting a missing review both succeed quietly.
func (r *ReviewRepository) SetStatus(id int64, status models.ReviewStatus) error {
	return r.db.Model(&models.Review{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DeleteByToolID removes every review referencing the tool (cascade step).
func (r *ReviewRepository) DeleteByToolID(toolID int64) error {
	return r.db.Where("tool_id = ?", toolID).Delete(&models.Review{}).Error
}

func (r *ReviewRepository) CountReviews() (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Count(&count).Error
	return count, err
}
