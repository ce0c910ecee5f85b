package repository

import (
	"context"

	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// BudgetFilter holds optional list filters.
type BudgetFilter struct {
	Category *string
}

// BudgetRepository persists budgets.
type BudgetRepository struct {
	*Repository[models.Budget]
}

// NewBudgetRepository creates a BudgetRepository.
func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{New[models.Budget](db)}
}

// CreateWithOwner binds budget to ownerID and inserts it.
func (r *BudgetRepository) CreateWithOwner(ctx context.Context, budget *models.Budget, ownerID uint) error {
	budget.ID = 0
	budget.UserID = ownerID
	return r.Create(ctx, budget)
}

// ListByOwner returns the owner's budgets, latest start date first.
func (r *BudgetRepository) ListByOwner(ctx context.Context, ownerID uint, page pagination.PageRequest, filter BudgetFilter) ([]models.Budget, int64, error) {
	filters := []Scope{OwnedBy(ownerID)}
	if filter.Category != nil {
		c := *filter.Category
		filters = append(filters, func(db *gorm.DB) *gorm.DB { return db.Where("category = ?", c) })
	}
	return r.List(ctx, ListOptions{
		Filters: filters,
		OrderBy: []string{"start_date DESC", "id DESC"},
		Page:    page,
	})
}
