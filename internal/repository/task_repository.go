package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sentinelos/engine/internal/models"
	appErr "github.com/sentinelos/engine/pkg/errors"
	"gorm.io/gorm"
)

type TaskRepository interface {
	BaseRepository[models.Task]
	ListByIngest(ctx context.Context, ingestID uuid.UUID) ([]models.Task, error)
}

type taskRepository struct {
	BaseRepository[models.Task]
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{BaseRepository: NewBaseRepository[models.Task](db, "task"), db: db}
}

// ListByIngest returns the tasks of one ingest in extraction order.
func (r *taskRepository) ListByIngest(ctx context.Context, ingestID uuid.UUID) ([]models.Task, error) {
	out := []models.Task{}
	if err := r.db.WithContext(ctx).Where("ingest_id = ?", ingestID).Order("position ASC").Find(&out).Error; err != nil {
		return nil, appErr.Store(err, "list tasks failed")
	}
	return out, nil
}
