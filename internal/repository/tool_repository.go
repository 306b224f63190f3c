package repository

import (
	"errors"

	"github.com/aitoolhub/backend/internal/models"
	"gorm.io/gorm"
)

type ToolRepository struct {
	db *gorm.DB
}

func NewToolRepository(db *gorm.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

func (r *ToolRepository) CreateTool(tool *models.Tool) error {
	return r.db.Create(tool).Error
}

// GetToolByID returns nil, nil when no tool exists with that ID.
func (r *ToolRepository) GetToolByID(id int64) (*models.Tool, error) {
	var tool models.Tool
	err := r.db.Where("id = ?", id).First(&tool).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &tool, nil
}

// ListTools returns tools matching the given category and pricing filters.
// Empty filter values match everything. Rating filters are not applied here;
// averages are computed per tool at the service layer.
func (r *ToolRepository) ListTools(category, pricing string) ([]models.Tool, error) {
	query := r.db.Model(&models.Tool{})

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if pricing != "" {
		query = query.Where("pricing = ?", pricing)
	}

	tools := make([]models.Tool, 0)
	err := query.Order("id").Find(&tools).Error
	return tools, err
}

// UpdateTool overwrites the mutable fields of the tool with the given ID.
// Returns the number of rows matched so callers can distinguish NotFound.
func (r *ToolRepository) UpdateTool(id int64, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Tool{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

// DeleteTool removes the tool row. Review cleanup is a separate step owned
// by the service; the two are intentionally not transactional.
func (r *ToolRepository) DeleteTool(id int64) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(&models.Tool{})
	return result.RowsAffected, result.Error
}

func (r *ToolRepository) CountTools() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tool{}).Count(&count).Error
	return count, err
}
