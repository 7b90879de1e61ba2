package repository

import (
	"context"

	"github.com/sentinelos/engine/internal/models"
	appErr "github.com/sentinelos/engine/pkg/errors"
	"gorm.io/gorm"
)

type ConflictRepository interface {
	BaseRepository[models.Conflict]
	ListRecent(ctx context.Context, orgID string, limit int) ([]models.Conflict, error)
}

type conflictRepository struct {
	BaseRepository[models.Conflict]
	db *gorm.DB
}

func NewConflictRepository(db *gorm.DB) ConflictRepository {
	return &conflictRepository{BaseRepository: NewBaseRepository[models.Conflict](db, "conflict"), db: db}
}

// ListRecent returns up to limit conflicts, most recently raised first.
func (r *conflictRepository) ListRecent(ctx context.Context, orgID string, limit int) ([]models.Conflict, error) {
	out := []models.Conflict{}
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Order("created_at DESC, position DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, appErr.Store(err, "list conflicts failed")
	}
	return out, nil
}
