package service

import (
	"fmt"

	"github.com/aitoolhub/backend/internal/apperr"
	"github.com/aitoolhub/backend/internal/repository"
)

// Stats holds the admin dashboard totals.
type Stats struct {
	Users   int64 `json:"users"`
	Tools   int64 `json:"tools"`
	Reviews int64 `json:"reviews"`
}

type StatsService struct {
	userRepo   *repository.UserRepository
	toolRepo   *repository.ToolRepository
	reviewRepo *repository.ReviewRepository
}

func NewStatsService(
	userRepo *repository.UserRepository,
	toolRepo *repository.ToolRepository,
	reviewRepo *repository.ReviewRepository,
) *StatsService {
	return &StatsService{
		userRepo:   userRepo,
		toolRepo:   toolRepo,
		reviewRepo: reviewRepo,
	}
}

// Totals counts users, tools and reviews across all statuses.
func (s *StatsService) Totals() (*Stats, error) {
	users, err := s.userRepo.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	tools, err := s.toolRepo.CountTools()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	reviews, err := s.reviewRepo.CountReviews()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	return &Stats{Users: users, Tools: tools, Reviews: reviews}, nil
}
