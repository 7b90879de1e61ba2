package repository

import "github.com/sentinelos/engine/internal/models"

// Models lists every persisted model in creation order.
func Models() []interface{} {
	return []interface{}{
		&models.Ingest{},
		&models.Truth{},
		&models.Conflict{},
		&models.Task{},
		&models.RiskAssessment{},
	}
}
