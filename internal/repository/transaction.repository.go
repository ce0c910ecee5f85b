package repository

import (
	"context"

	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// TransactionFilter holds optional list filters. Category matching is
// case-sensitive.
type TransactionFilter struct {
	Type     *models.TransactionType
	Category *string
}

func (f TransactionFilter) scopes() []Scope {
	var scopes []Scope
	if f.Type != nil {
		t := *f.Type
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("type = ?", t) })
	}
	if f.Category != nil {
		c := *f.Category
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("category = ?", c) })
	}
	return scopes
}

// TransactionRepository persists transactions.
type TransactionRepository struct {
	*Repository[models.Transaction]
}

// NewTransactionRepository creates a TransactionRepository.
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{New[models.Transaction](db)}
}

// CreateWithOwner binds transaction to ownerID and inserts it.
func (r *TransactionRepository) CreateWithOwner(ctx context.Context, transaction *models.Transaction, ownerID uint) error {
	transaction.ID = 0
	transaction.UserID = ownerID
	return r.Create(ctx, transaction)
}

// ListByOwner returns the owner's transactions, newest first.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID uint, page pagination.PageRequest, filter TransactionFilter) ([]models.Transaction, int64, error) {
	return r.List(ctx, ListOptions{
		Filters: append([]Scope{OwnedBy(ownerID)}, filter.scopes()...),
		OrderBy: []string{"date DESC", "created_at DESC", "id DESC"},
		Page:    page,
	})
}
