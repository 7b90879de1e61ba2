package repository

import (
	"context"
	"errors"

	appErr "github.com/sentinelos/engine/pkg/errors"
	"gorm.io/gorm"
)

// BaseRepository is the write side every append-only table shares.
// Rows are never updated or deleted.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
}

type baseRepository[T any] struct {
	db   *gorm.DB
	name string
}

func NewBaseRepository[T any](db *gorm.DB, name string) BaseRepository[T] {
	return &baseRepository[T]{db: db, name: name}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return appErr.Store(err, "create "+r.name+" failed")
	}
	return nil
}

func notFoundOr(err error, notFound, failed string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErr.New(appErr.CodeNotFound, notFound)
	}
	return appErr.Store(err, failed)
}
