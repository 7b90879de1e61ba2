package repository

import (
	"context"
	"errors"
	"hash/fnv"

	"github.com/sentinelos/engine/internal/models"
	appErr "github.com/sentinelos/engine/pkg/errors"
	"gorm.io/gorm"
)

type TruthRepository interface {
	BaseRepository[models.Truth]
	// LockKey serializes writers of one (org, key) until the surrounding
	// transaction ends. It must be called on a transaction-bound repository.
	LockKey(ctx context.Context, orgID, key string) error
	// Latest returns the highest version of key, or nil when the key has none.
	Latest(ctx context.Context, orgID, key string) (*models.Truth, error)
	// ListByOrg returns every version of every key, keys ascending and
	// versions newest first.
	ListByOrg(ctx context.Context, orgID string) ([]models.Truth, error)
}

type truthRepository struct {
	BaseRepository[models.Truth]
	db *gorm.DB
}

func NewTruthRepository(db *gorm.DB) TruthRepository {
	return &truthRepository{BaseRepository: NewBaseRepository[models.Truth](db, "truth"), db: db}
}

// LockKey takes a transaction-scoped advisory lock on PostgreSQL. SQLite
// connections are opened with a single connection, so every transaction
// already holds the database exclusively and no lock is needed.
func (r *truthRepository) LockKey(ctx context.Context, orgID, key string) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", truthLockID(orgID, key)).Error; err != nil {
		return appErr.Store(err, "lock truth key failed")
	}
	return nil
}

func (r *truthRepository) Latest(ctx context.Context, orgID, key string) (*models.Truth, error) {
	var t models.Truth
	err := r.db.WithContext(ctx).Where("org_id = ? AND key = ?", orgID, key).Order("version DESC").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, appErr.Store(err, "read latest truth failed")
	}
	return &t, nil
}

func (r *truthRepository) ListByOrg(ctx context.Context, orgID string) ([]models.Truth, error) {
	out := []models.Truth{}
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Order("key ASC, version DESC").Find(&out).Error; err != nil {
		return nil, appErr.Store(err, "list truths failed")
	}
	return out, nil
}

func truthLockID(orgID, key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("truth:" + orgID + ":" + key))
	return int64(h.Sum64())
}
