package repository

import (
	"context"

	"github.com/sentinelos/engine/internal/models"
	appErr "github.com/sentinelos/engine/pkg/errors"
	"gorm.io/gorm"
)

type IngestRepository interface {
	BaseRepository[models.Ingest]
	GetLatest(ctx context.Context, orgID string, dest *models.Ingest) error
	ListRecent(ctx context.Context, orgID string, limit int) ([]models.Ingest, error)
	ListOrgs(ctx context.Context) ([]string, error)
}

type ingestRepository struct {
	BaseRepository[models.Ingest]
	db *gorm.DB
}

func NewIngestRepository(db *gorm.DB) IngestRepository {
	return &ingestRepository{BaseRepository: NewBaseRepository[models.Ingest](db, "ingest"), db: db}
}

func (r *ingestRepository) GetLatest(ctx context.Context, orgID string, dest *models.Ingest) error {
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Order("created_at DESC, id DESC").First(dest).Error; err != nil {
		return notFoundOr(err, "no ingests found", "get latest ingest failed")
	}
	return nil
}

// ListRecent returns up to limit ingests of orgID, newest first.
func (r *ingestRepository) ListRecent(ctx context.Context, orgID string, limit int) ([]models.Ingest, error) {
	out := []models.Ingest{}
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, appErr.Store(err, "list ingests failed")
	}
	return out, nil
}

func (r *ingestRepository) ListOrgs(ctx context.Context) ([]string, error) {
	out := []string{}
	if err := r.db.WithContext(ctx).Model(&models.Ingest{}).Distinct("org_id").Order("org_id").Pluck("org_id", &out).Error; err != nil {
		return nil, appErr.Store(err, "list orgs failed")
	}
	return out, nil
}
