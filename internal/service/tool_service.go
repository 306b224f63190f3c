package service

import (
	"fmt"
	"time"

	"github.com/aitoolhub/backend/internal/apperr"
	"github.com/aitoolhub/backend/internal/models"
	"github.com/aitoolhub/backend/internal/repository"
	"github.com/aitoolhub/backend/pkg/logger"
	"go.uber.org/zap"
)

// ToolInput carries the mutable tool fields for create and update.
type ToolInput struct {
	Name        string
	UseCase     string
	Category    string
	Pricing     string
	Description string
	Website     string
}

// ToolService owns catalog CRUD and the listing view that folds in the
// per-tool rating aggregate.
type ToolService struct {
	toolRepo   *repository.ToolRepository
	reviewRepo *repository.ReviewRepository
	counters   *repository.CounterRepository
	reviews    *ReviewService
}

func NewToolService(
	toolRepo *repository.ToolRepository,
	reviewRepo *repository.ReviewRepository,
	counters *repository.CounterRepository,
	reviews *ReviewService,
) *ToolService {
	return &ToolService{
		toolRepo:   toolRepo,
		reviewRepo: reviewRepo,
		counters:   counters,
		reviews:    reviews,
	}
}

// CreateTool allocates an ID from the tools namespace and persists the tool.
func (s *ToolService) CreateTool(input ToolInput) (*models.Tool, error) {
	id, err := s.counters.Next(models.NamespaceTools)
	if err != nil {
		logger.Log.Error("Failed to allocate tool id", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	tool := &models.Tool{
		ID:          id,
		Name:        input.Name,
		UseCase:     input.UseCase,
		Category:    input.Category,
		Pricing:     input.Pricing,
		Description: input.Description,
		Website:     input.Website,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.toolRepo.CreateTool(tool); err != nil {
		logger.Log.Error("Failed to create tool",
			zap.Int64("tool_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	logger.Log.Info("Tool created",
		zap.Int64("tool_id", id),
		zap.String("name", input.Name),
	)

	return tool, nil
}

// GetTool returns the tool or NotFound.
func (s *ToolService) GetTool(id int64) (*models.Tool, error) {
	tool, err := s.toolRepo.GetToolByID(id)
	if err != nil {
		logger.Log.Error("Failed to get tool",
			zap.Int64("tool_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if tool == nil {
		return nil, fmt.Errorf("%w: tool %d", apperr.ErrNotFound, id)
	}
	return tool, nil
}

// UpdateTool overwrites the tool's fields; NotFound when no tool matches.
func (s *ToolService) UpdateTool(id int64, input ToolInput) error {
	matched, err := s.toolRepo.UpdateTool(id, map[string]interface{}{
		"name":        input.Name,
		"use_case":    input.UseCase,
		"category":    input.Category,
		"pricing":     input.Pricing,
		"description": input.Description,
		"website":     input.Website,
		"updated_at":  time.Now().UTC(),
	})
	if err != nil {
		logger.Log.Error("Failed to update tool",
			zap.Int64("tool_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if matched == 0 {
		return fmt.Errorf("%w: tool %d", apperr.ErrNotFound, id)
	}

	logger.Log.Info("Tool updated", zap.Int64("tool_id", id))
	return nil
}

// DeleteTool removes the tool and then its reviews. The two steps are not
// transactional: if review cleanup fails after the tool row is gone, the
// orphaned reviews are logged and the operation still reports success.
func (s *ToolService) DeleteTool(id int64) error {
	deleted, err := s.toolRepo.DeleteTool(id)
	if err != nil {
		logger.Log.Error("Failed to delete tool",
			zap.Int64("tool_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: tool %d", apperr.ErrNotFound, id)
	}

	if err := s.reviewRepo.DeleteByToolID(id); err != nil {
		logger.Log.Warn("Tool deleted but review cleanup failed, reviews orphaned",
			zap.Int64("tool_id", id),
			zap.Error(err),
		)
		return nil
	}

	logger.Log.Info("Tool deleted with its reviews", zap.Int64("tool_id", id))
	return nil
}

// ListTools returns tools matching the category/pricing filters, each with
// its freshly computed rating aggregate. minRating, when non-nil, drops
// tools whose computed average is below the threshold; the cut is applied
// here per tool, after aggregation, never in the store query.
func (s *ToolService) ListTools(category, pricing string, minRating *float64) ([]models.ToolWithRating, error) {
	tools, err := s.toolRepo.ListTools(category, pricing)
	if err != nil {
		logger.Log.Error("Failed to list tools", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	result := make([]models.ToolWithRating, 0, len(tools))
	for _, tool := range tools {
		summary, err := s.reviews.Aggregate(tool.ID)
		if err != nil {
			return nil, err
		}

		if minRating != nil && summary.Average < *minRating {
			continue
		}

		result = append(result, models.ToolWithRating{
			Tool:        tool,
			AvgRating:   summary.Average,
			ReviewCount: summary.Count,
		})
	}

	return result, nil
}
