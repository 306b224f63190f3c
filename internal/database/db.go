package database

import (
	"fmt"

	"github.com/aitoolhub/backend/internal/config"
	"github.com/aitoolhub/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and returns the handle. The handle is passed
// into repositories explicitly; there is no package-level connection.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the users, tools, reviews and counters tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tool{},
		&models.Review{},
		&models.Counter{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
