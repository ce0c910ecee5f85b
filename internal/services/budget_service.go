package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/database"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/repository"
)

var errBudgetDateRange = fieldInvalid("end_date", "must not be before start_date")

// budgetService handles budget-related business logic.
type budgetService struct {
	db   *gorm.DB
	repo *repository.BudgetRepository
	now  func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db, repo: repository.NewBudgetRepository(db), now: time.Now}
}

// CreateBudget creates a budget owned by userID. The end date may not precede
// the start date.
func (s *budgetService) CreateBudget(ctx context.Context, userID uint, in BudgetInput) (*models.Budget, error) {
	if err := requirePositive("amount", in.Amount); err != nil {
		return nil, err
	}
	if err := requireText("category", in.Category, 100); err != nil {
		return nil, err
	}

	start := in.StartDate
	if start.IsZero() {
		start = s.now().UTC()
	}
	if in.EndDate.Before(start) {
		return nil, errBudgetDateRange
	}

	budget := &models.Budget{
		Category:  in.Category,
		Amount:    in.Amount,
		StartDate: start,
		EndDate:   in.EndDate,
		Name:      in.Name,
	}
	if err := s.repo.CreateWithOwner(ctx, budget, userID); err != nil {
		return nil, storeError(err)
	}
	return budget, nil
}

// GetUserBudgets returns a page of the user's budgets, latest start date first.
func (s *budgetService) GetUserBudgets(ctx context.Context, userID uint, page pagination.PageRequest, filter BudgetFilter) (*pagination.PageResponse[models.Budget], error) {
	items, total, err := s.repo.ListByOwner(ctx, userID, page, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	result := pagination.NewPageResponse(items, page, total)
	return &result, nil
}

// GetBudgetByID returns a budget owned by userID.
func (s *budgetService) GetBudgetByID(ctx context.Context, userID, budgetID uint) (*models.Budget, error) {
	return s.load(ctx, userID, budgetID)
}

// UpdateBudget applies patch to a budget owned by userID. The date range is
// checked against the merged result.
func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID uint, patch BudgetPatch) (*models.Budget, error) {
	var budget *models.Budget
	err := database.WithinTransaction(ctx, s.db, func(ctx context.Context) error {
		var err error
		if budget, err = s.load(ctx, userID, budgetID); err != nil {
			return err
		}

		start, end := budget.StartDate, budget.EndDate
		if patch.StartDate != nil {
			start = *patch.StartDate
		}
		if patch.EndDate != nil {
			end = *patch.EndDate
		}
		if end.Before(start) {
			return errBudgetDateRange
		}

		changes, err := patch.changes()
		if err != nil {
			return err
		}
		return s.repo.Update(ctx, budget, changes)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return budget, nil
}

// DeleteBudget hard-deletes a budget owned by userID.
func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID uint) error {
	err := database.WithinTransaction(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.load(ctx, userID, budgetID); err != nil {
			return err
		}
		return s.repo.Remove(ctx, budgetID)
	})
	if err != nil {
		return storeError(err)
	}
	return nil
}

func (s *budgetService) load(ctx context.Context, userID, budgetID uint) (*models.Budget, error) {
	return loadOwned(ctx, s.repo.Get, func(b *models.Budget) uint { return b.UserID },
		budgetID, userID, apperrors.ErrBudgetNotFound)
}

func (p BudgetPatch) changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if p.Category != nil {
		if err := requireText("category", *p.Category, 100); err != nil {
			return nil, err
		}
		changes["category"] = *p.Category
	}
	if p.Amount != nil {
		if err := requirePositive("amount", *p.Amount); err != nil {
			return nil, err
		}
		changes["amount"] = *p.Amount
	}
	if p.StartDate != nil {
		changes["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		changes["end_date"] = *p.EndDate
	}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	clearNullable(changes, p.Clear, "name")
	return changes, nil
}
