// Package repository is the only layer that issues queries against the
// relational store. Every entity repository composes the generic
// Repository with its own ordering and filter scopes.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fintrack/internal/database"
	"fintrack/internal/pagination"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Scope narrows a query.
type Scope = func(db *gorm.DB) *gorm.DB

// ListOptions controls List.
type ListOptions struct {
	Filters []Scope
	OrderBy []string
	Page    pagination.PageRequest
}

// Repository provides persistence operations for entity type T.
type Repository[T any] struct {
	db *gorm.DB
}

// New creates a Repository for T.
func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB returns the handle the repository was created with.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

func (r *Repository[T]) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db)
}

// Get returns the entity with the given id, or ErrNotFound.
func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.conn(ctx).First(&entity, id).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

// List returns one page of entities matching opts and the total number of
// matches.
func (r *Repository[T]) List(ctx context.Context, opts ListOptions) ([]T, int64, error) {
	base := r.conn(ctx).Model(new(T)).Scopes(opts.Filters...)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.conn(ctx).Model(new(T)).Scopes(opts.Filters...)
	for _, order := range opts.OrderBy {
		query = query.Order(order)
	}

	var items []T
	if err := query.Scopes(pagination.Paginate(opts.Page)).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create inserts entity. The insert is committed before Create returns.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return database.WithinTransaction(ctx, r.db, func(ctx context.Context) error {
		return translate(r.conn(ctx).Create(entity).Error)
	})
}

// Update applies the columns in changes to entity and reloads it. Columns
// absent from changes keep their stored value; an empty change set only
// bumps updated_at.
func (r *Repository[T]) Update(ctx context.Context, entity *T, changes map[string]interface{}) error {
	if changes == nil {
		changes = map[string]interface{}{}
	}
	return database.WithinTransaction(ctx, r.db, func(ctx context.Context) error {
		if err := r.conn(ctx).Model(entity).Updates(changes).Error; err != nil {
			return translate(err)
		}
		return translate(r.conn(ctx).First(entity).Error)
	})
}

// Remove hard-deletes the entity with the given id. Removing a missing id is
// not an error.
func (r *Repository[T]) Remove(ctx context.Context, id uint) error {
	return database.WithinTransaction(ctx, r.db, func(ctx context.Context) error {
		return r.conn(ctx).Delete(new(T), id).Error
	})
}

// OwnedBy restricts a query to rows belonging to ownerID.
func OwnedBy(ownerID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", ownerID)
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
