// Package journal records every call made to the text generation service.
// Entries are an operational audit trail; they are never used to answer a
// recipe request.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-crafter/config"
	"github.com/pageza/alchemorsel-crafter/internal/database"
	"github.com/pageza/alchemorsel-crafter/internal/models"
)

// DefaultLimit and MaxLimit bound the number of entries Recent returns
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Recorder stores generation entries
type Recorder interface {
	Record(ctx context.Context, g *models.Generation) error
	Recent(ctx context.Context, limit int) ([]models.Generation, error)
	Ping(ctx context.Context) error
	Close() error
	Driver() string
}

// New opens the recorder selected by cfg.JournalDriver. A disabled journal
// yields Nop.
func New(cfg *config.Config, logger *zap.Logger) (Recorder, error) {
	switch cfg.JournalDriver {
	case config.JournalNone:
		return Nop{}, nil
	case config.JournalSQLite, config.JournalPostgres:
		db, err := database.Open(cfg.JournalDriver, cfg.JournalDSN, logger)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db, logger); err != nil {
			return nil, err
		}
		return NewGormRecorder(db, cfg.JournalDriver), nil
	case config.JournalRedis:
		client, err := database.NewRedisClient(cfg.JournalDSN, logger)
		if err != nil {
			return nil, err
		}
		return NewRedisRecorder(client, cfg.JournalMaxEntries), nil
	default:
		return nil, fmt.Errorf("unsupported journal driver %q", cfg.JournalDriver)
	}
}

// ClampLimit maps a requested page size onto [1, MaxLimit], using
// DefaultLimit for non-positive values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// prepare fills the identity fields of an entry that has none yet
func prepare(g *models.Generation) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	if g.Ingredients == nil {
		g.Ingredients = models.JSONBStringArray{}
	}
	if g.Restrictions == nil {
		g.Restrictions = models.JSONBStringArray{}
	}
}

// Nop discards every entry
type Nop struct{}

func (Nop) Record(context.Context, *models.Generation) error { return nil }

func (Nop) Recent(context.Context, int) ([]models.Generation, error) {
	return []models.Generation{}, nil
}

func (Nop) Ping(context.Context) error { return nil }

func (Nop) Close() error { return nil }

func (Nop) Driver() string { return "disabled" }
