package journal

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-crafter/internal/database"
	"github.com/pageza/alchemorsel-crafter/internal/models"
)

// GormRecorder keeps entries in a SQL table
type GormRecorder struct {
	db     *gorm.DB
	driver string
}

// NewGormRecorder wraps an open, migrated database
func NewGormRecorder(db *gorm.DB, driver string) *GormRecorder {
	return &GormRecorder{db: db, driver: driver}
}

func (r *GormRecorder) Record(ctx context.Context, g *models.Generation) error {
	prepare(g)
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// Recent returns the newest entries first
func (r *GormRecorder) Recent(ctx context.Context, limit int) ([]models.Generation, error) {
	var entries []models.Generation
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(ClampLimit(limit)).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return entries, nil
}

func (r *GormRecorder) Ping(ctx context.Context) error {
	return database.HealthCheck(ctx, r.db)
}

func (r *GormRecorder) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *GormRecorder) Driver() string { return r.driver }
