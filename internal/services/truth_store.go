package services

import (
	"context"

	"github.com/sentinelos/engine/internal/intelligence"
	"github.com/sentinelos/engine/internal/models"
	"github.com/sentinelos/engine/internal/repository"
)

// TruthStore appends versioned truths and raises conflicts against the
// current value of each key.
type TruthStore interface {
	// Record must run inside the ingest transaction. Truths are applied in
	// the given order, which is also the order keys are locked in.
	Record(ctx context.Context, tx *repository.Store, ingest *models.Ingest, truths []intelligence.Truth) ([]intelligence.Conflict, error)
}

type truthStore struct{}

func NewTruthStore() TruthStore { return truthStore{} }

var _ TruthStore = truthStore{}

func (truthStore) Record(ctx context.Context, tx *repository.Store, ingest *models.Ingest, truths []intelligence.Truth) ([]intelligence.Conflict, error) {
	conflicts := []intelligence.Conflict{}

	for _, tr := range truths {
		if err := tx.Truths.LockKey(ctx, ingest.OrgID, tr.Key); err != nil {
			return nil, err
		}
		current, err := tx.Truths.Latest(ctx, ingest.OrgID, tr.Key)
		if err != nil {
			return nil, err
		}

		version := 0
		var currentValue *string
		if current != nil {
			version = current.Version
			currentValue = &current.Value
		}

		if intelligence.DetectConflict(currentValue, tr.Value) {
			c := intelligence.NewConflict(tr.Key, current.Value, tr.Value)
			if err := tx.Conflicts.Create(ctx, &models.Conflict{
				OrgID:     ingest.OrgID,
				IngestID:  ingest.ID,
				Position:  len(conflicts),
				Key:       c.Key,
				OldValue:  c.OldValue,
				NewValue:  c.NewValue,
				Question:  c.Question,
				CreatedAt: ingest.CreatedAt,
			}); err != nil {
				return nil, err
			}
			conflicts = append(conflicts, c)
		}

		if err := tx.Truths.Create(ctx, &models.Truth{
			OrgID:     ingest.OrgID,
			Key:       tr.Key,
			Version:   version + 1,
			Value:     tr.Value,
			IngestID:  ingest.ID,
			CreatedAt: ingest.CreatedAt,
		}); err != nil {
			return nil, err
		}
	}

	return conflicts, nil
}
