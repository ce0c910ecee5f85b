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

var errTransactionType = fieldInvalid("type", "must be one of: income, expense")

// transactionService handles transaction-related business logic.
type transactionService struct {
	db   *gorm.DB
	repo *repository.TransactionRepository
	now  func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db, repo: repository.NewTransactionRepository(db), now: time.Now}
}

// CreateTransaction records a transaction owned by userID.
func (s *transactionService) CreateTransaction(ctx context.Context, userID uint, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	transaction := &models.Transaction{
		Amount:      in.Amount,
		Category:    in.Category,
		Type:        in.Type,
		Date:        date,
		Description: in.Description,
	}
	if err := s.repo.CreateWithOwner(ctx, transaction, userID); err != nil {
		return nil, storeError(err)
	}
	return transaction, nil
}

// GetUserTransactions returns a page of the user's transactions, newest first.
func (s *transactionService) GetUserTransactions(ctx context.Context, userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	items, total, err := s.repo.ListByOwner(ctx, userID, page, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	result := pagination.NewPageResponse(items, page, total)
	return &result, nil
}

// GetTransactionByID returns a transaction owned by userID.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID uint) (*models.Transaction, error) {
	return s.load(ctx, userID, transactionID)
}

// UpdateTransaction applies patch to a transaction owned by userID.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID uint, patch TransactionPatch) (*models.Transaction, error) {
	var transaction *models.Transaction
	err := database.WithinTransaction(ctx, s.db, func(ctx context.Context) error {
		var err error
		if transaction, err = s.load(ctx, userID, transactionID); err != nil {
			return err
		}
		changes, err := patch.changes()
		if err != nil {
			return err
		}
		return s.repo.Update(ctx, transaction, changes)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return transaction, nil
}

// DeleteTransaction hard-deletes a transaction owned by userID.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID uint) error {
	err := database.WithinTransaction(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.load(ctx, userID, transactionID); err != nil {
			return err
		}
		return s.repo.Remove(ctx, transactionID)
	})
	if err != nil {
		return storeError(err)
	}
	return nil
}

func (s *transactionService) load(ctx context.Context, userID, transactionID uint) (*models.Transaction, error) {
	return loadOwned(ctx, s.repo.Get, func(t *models.Transaction) uint { return t.UserID },
		transactionID, userID, apperrors.ErrTransactionNotFound)
}

func (p TransactionPatch) changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if p.Amount != nil {
		if err := requirePositive("amount", *p.Amount); err != nil {
			return nil, err
		}
		changes["amount"] = *p.Amount
	}
	if p.Category != nil {
		if err := requireText("category", *p.Category, 100); err != nil {
			return nil, err
		}
		changes["category"] = *p.Category
	}
	if p.Type != nil {
		if !p.Type.Valid() {
			return nil, errTransactionType
		}
		changes["type"] = *p.Type
	}
	if p.Date != nil {
		changes["date"] = *p.Date
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	clearNullable(changes, p.Clear, "description")
	return changes, nil
}

func (in TransactionInput) validate() error {
	if err := requirePositive("amount", in.Amount); err != nil {
		return err
	}
	if err := requireText("category", in.Category, 100); err != nil {
		return err
	}
	if !in.Type.Valid() {
		return errTransactionType
	}
	return nil
}
