package repository

import (
	"context"

	"github.com/sentinelos/engine/internal/models"
	"gorm.io/gorm"
)

type RiskRepository interface {
	BaseRepository[models.RiskAssessment]
	GetLatest(ctx context.Context, orgID string, dest *models.RiskAssessment) error
}

type riskRepository struct {
	BaseRepository[models.RiskAssessment]
	db *gorm.DB
}

func NewRiskRepository(db *gorm.DB) RiskRepository {
	return &riskRepository{BaseRepository: NewBaseRepository[models.RiskAssessment](db, "risk assessment"), db: db}
}

func (r *riskRepository) GetLatest(ctx context.Context, orgID string, dest *models.RiskAssessment) error {
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Order("created_at DESC, id DESC").First(dest).Error; err != nil {
		return notFoundOr(err, "no risk assessment found", "get latest risk assessment failed")
	}
	return nil
}
