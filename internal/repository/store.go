package repository

import (
	"context"
	"fmt"

	appErr "github.com/sentinelos/engine/pkg/errors"
	"gorm.io/gorm"
)

// Store bundles the repositories that share one connection or one transaction.
type Store struct {
	db *gorm.DB

	Ingests   IngestRepository
	Truths    TruthRepository
	Conflicts ConflictRepository
	Tasks     TaskRepository
	Risks     RiskRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Ingests:   NewIngestRepository(db),
		Truths:    NewTruthRepository(db),
		Conflicts: NewConflictRepository(db),
		Tasks:     NewTaskRepository(db),
		Risks:     NewRiskRepository(db),
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

// WithTx returns a Store whose repositories all run on tx.
func (s *Store) WithTx(tx *gorm.DB) *Store { return NewStore(tx) }

// Transaction runs fn against a transaction-bound Store. The transaction is
// committed when fn returns nil and rolled back otherwise; fn must not use the
// receiver, because SQLite holds a single connection for the whole transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return appErr.Store(tx.Error, "begin transaction failed")
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(s.WithTx(tx)); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return appErr.Store(err, "commit transaction failed")
	}
	return nil
}

// AutoMigrate creates or updates every table the engine writes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
