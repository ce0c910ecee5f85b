package services

import (
	"context"

	"gorm.io/gorm"

	"fintrack/internal/database"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/repository"
)

// goalService handles savings-goal business logic. CurrentAmount is whatever
// the client last set; it is neither derived from transactions nor capped at
// TargetAmount.
type goalService struct {
	db   *gorm.DB
	repo *repository.GoalRepository
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db, repo: repository.NewGoalRepository(db)}
}

// CreateGoal creates a goal owned by userID.
func (s *goalService) CreateGoal(ctx context.Context, userID uint, in GoalInput) (*models.Goal, error) {
	if err := requireText("name", in.Name, 255); err != nil {
		return nil, err
	}
	if err := requirePositive("target_amount", in.TargetAmount); err != nil {
		return nil, err
	}
	if err := requireNonNegative("current_amount", in.CurrentAmount); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
		Description:   in.Description,
	}
	if err := s.repo.CreateWithOwner(ctx, goal, userID); err != nil {
		return nil, storeError(err)
	}
	return goal, nil
}

// GetUserGoals returns a page of the user's goals, nearest deadline first.
func (s *goalService) GetUserGoals(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	items, total, err := s.repo.ListByOwner(ctx, userID, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	result := pagination.NewPageResponse(items, page, total)
	return &result, nil
}

// GetGoalByID returns a goal owned by userID.
func (s *goalService) GetGoalByID(ctx context.Context, userID, goalID uint) (*models.Goal, error) {
	return s.load(ctx, userID, goalID)
}

// UpdateGoal applies patch to a goal owned by userID.
func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID uint, patch GoalPatch) (*models.Goal, error) {
	var goal *models.Goal
	err := database.WithinTransaction(ctx, s.db, func(ctx context.Context) error {
		var err error
		if goal, err = s.load(ctx, userID, goalID); err != nil {
			return err
		}
		changes, err := patch.changes()
		if err != nil {
			return err
		}
		return s.repo.Update(ctx, goal, changes)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return goal, nil
}

// DeleteGoal hard-deletes a goal owned by userID.
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID uint) error {
	err := database.WithinTransaction(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.load(ctx, userID, goalID); err != nil {
			return err
		}
		return s.repo.Remove(ctx, goalID)
	})
	if err != nil {
		return storeError(err)
	}
	return nil
}

func (s *goalService) load(ctx context.Context, userID, goalID uint) (*models.Goal, error) {
	return loadOwned(ctx, s.repo.Get, func(g *models.Goal) uint { return g.UserID },
		goalID, userID, apperrors.ErrGoalNotFound)
}

func (p GoalPatch) changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if p.Name != nil {
		if err := requireText("name", *p.Name, 255); err != nil {
			return nil, err
		}
		changes["name"] = *p.Name
	}
	if p.TargetAmount != nil {
		if err := requirePositive("target_amount", *p.TargetAmount); err != nil {
			return nil, err
		}
		changes["target_amount"] = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		if err := requireNonNegative("current_amount", *p.CurrentAmount); err != nil {
			return nil, err
		}
		changes["current_amount"] = *p.CurrentAmount
	}
	if p.Deadline != nil {
		changes["deadline"] = *p.Deadline
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	clearNullable(changes, p.Clear, "deadline", "description")
	return changes, nil
}
