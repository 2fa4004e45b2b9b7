package database

import (
	"fmt"

	"gorm.io/gorm"

	"post-content-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models
// It creates tables and indexes based on the struct definitions
// in the domain package
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.Post{},
		&domain.Attachment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}
