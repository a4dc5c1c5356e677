package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Scope bir sorguya koşul ekler; GetWhere ve Count tarafından kullanılır.
type Scope func(*gorm.DB) *gorm.DB

func Where(query interface{}, args ...interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

func OrderBy(value string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(value)
	}
}

func Preload(association string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(association)
	}
}

// Repository is a generic CRUD gateway over a single gorm model. Every call
// commits on its own.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

func (r *Repository[T]) conn(ctx context.Context, scopes ...Scope) *gorm.DB {
	db := r.db.WithContext(ctx)
	for _, scope := range scopes {
		db = scope(db)
	}
	return db
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.GetWhere(ctx)
}

func (r *Repository[T]) GetByID(ctx context.Context, id uint, scopes ...Scope) (*T, error) {
	var entity T
	err := r.conn(ctx, scopes...).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *Repository[T]) GetWhere(ctx context.Context, scopes ...Scope) ([]T, error) {
	entities := make([]T, 0)
	if err := r.conn(ctx, scopes...).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *Repository[T]) FirstWhere(ctx context.Context, scopes ...Scope) (*T, error) {
	var entity T
	err := r.conn(ctx, scopes...).Take(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *Repository[T]) Add(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

// Delete removes the row with the given id. Missing rows are not an error.
func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(new(T), id).Error
}

func (r *Repository[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var count int64
	err := r.conn(ctx, scopes...).Model(new(T)).Count(&count).Error
	return count, err
}
