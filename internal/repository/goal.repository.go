package repository

import (
	"context"

	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// GoalRepository persists goals.
type GoalRepository struct {
	*Repository[models.Goal]
}

// NewGoalRepository creates a GoalRepository.
func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{New[models.Goal](db)}
}

// CreateWithOwner binds goal to ownerID and inserts it.
func (r *GoalRepository) CreateWithOwner(ctx context.Context, goal *models.Goal, ownerID uint) error {
	goal.ID = 0
	goal.UserID = ownerID
	return r.Create(ctx, goal)
}

// ListByOwner returns the owner's goals, nearest deadline first and goals
// without a deadline last.
func (r *GoalRepository) ListByOwner(ctx context.Context, ownerID uint, page pagination.PageRequest) ([]models.Goal, int64, error) {
	return r.List(ctx, ListOptions{
		Filters: []Scope{OwnedBy(ownerID)},
		OrderBy: []string{
			"CASE WHEN deadline IS NULL THEN 1 ELSE 0 END",
			"deadline ASC",
			"created_at DESC",
			"id DESC",
		},
		Page: page,
	})
}
