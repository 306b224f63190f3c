package testutil

import (
	"time"

	"github.com/aitoolhub/backend/internal/models"
	"github.com/aitoolhub/backend/internal/utils"
	"github.com/google/uuid"
)

// CreateTestUser builds a user with a real Argon2id password hash.
func CreateTestUser(username, password string, role models.Role) (*models.User, error) {
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// DefaultTestUser returns a regular user fixture.
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("testuser", "Test123456", models.RoleUser)
}

// DefaultAdminUser returns an admin fixture.
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("admin", "Admin123456", models.RoleAdmin)
}

// CreateTestTool builds a tool with an explicit ID, bypassing the allocator.
func CreateTestTool(id int64, name, category, pricing string) *models.Tool {
	now := time.Now()
	return &models.Tool{
		ID:        id,
		Name:      name,
		UseCase:   "testing",
		Category:  category,
		Pricing:   pricing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestReview builds a review with an explicit ID and status.
func CreateTestReview(id, toolID int64, rating float64, status models.ReviewStatus, username string) *models.Review {
	return &models.Review{
		ID:        id,
		ToolID:    toolID,
		Rating:    rating,
		Comment:   "test comment",
		Username:  username,
		Status:    status,
		CreatedAt: time.Now(),
	}
}
