package database

import (
	"fmt"

	"github.com/pageza/alchemorsel-crafter/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations creates or updates the journal tables
func RunMigrations(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running auto-migration", zap.String("dialect", db.Dialector.Name()))

	if err := db.AutoMigrate(&models.Generation{}); err != nil {
		return fmt.Errorf("failed to migrate generations table: %w", err)
	}

	return nil
}
