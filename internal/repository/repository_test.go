package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/database"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/repository"
	"fintrack/internal/testutil"
)

func TestRepository_GetMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	_, err := repo.Get(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTransactionRepository_CreateWithOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	repo := repository.NewTransactionRepository(db)

	tx := &models.Transaction{
		Base:     models.Base{ID: 4242},
		UserID:   other.ID,
		Amount:   10.5,
		Category: "Food",
		Type:     models.TransactionTypeExpense,
		Date:     time.Now(),
	}
	require.NoError(t, repo.CreateWithOwner(ctx, tx, owner.ID))

	assert.NotEqual(t, uint(4242), tx.ID)
	assert.Equal(t, owner.ID, tx.UserID)

	stored, err := repo.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, stored.UserID)
	assert.Equal(t, 10.5, stored.Amount)
}

func TestTransactionRepository_ListByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	repo := repository.NewTransactionRepository(db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oldest := testutil.CreateTestTransactionOn(t, db, owner.ID, models.TransactionTypeIncome, 1, base)
	middle := testutil.CreateTestTransactionOn(t, db, owner.ID, models.TransactionTypeExpense, 2, base.AddDate(0, 0, 1))
	newest := testutil.CreateTestTransactionOn(t, db, owner.ID, models.TransactionTypeExpense, 3, base.AddDate(0, 0, 2))
	testutil.CreateTestTransactionOn(t, db, other.ID, models.TransactionTypeIncome, 4, base.AddDate(0, 0, 3))

	t.Run("scoped_to_owner_newest_first", func(t *testing.T) {
		items, total, err := repo.ListByOwner(ctx, owner.ID, pagination.PageRequest{}, repository.TransactionFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, items, 3)
		assert.Equal(t, []uint{newest.ID, middle.ID, oldest.ID}, []uint{items[0].ID, items[1].ID, items[2].ID})
	})

	t.Run("pages_are_disjoint", func(t *testing.T) {
		first, total, err := repo.ListByOwner(ctx, owner.ID, pagination.New(0, 2), repository.TransactionFilter{})
		require.NoError(t, err)
		second, _, err := repo.ListByOwner(ctx, owner.ID, pagination.New(2, 2), repository.TransactionFilter{})
		require.NoError(t, err)

		assert.EqualValues(t, 3, total)
		require.Len(t, first, 2)
		require.Len(t, second, 1)
		assert.Equal(t, oldest.ID, second[0].ID)
		for _, item := range first {
			assert.NotEqual(t, second[0].ID, item.ID)
		}
	})

	t.Run("skip_past_end", func(t *testing.T) {
		items, total, err := repo.ListByOwner(ctx, owner.ID, pagination.New(10, 5), repository.TransactionFilter{})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.EqualValues(t, 3, total)
	})

	t.Run("filter_by_type", func(t *testing.T) {
		expense := models.TransactionTypeExpense
		items, total, err := repo.ListByOwner(ctx, owner.ID, pagination.PageRequest{}, repository.TransactionFilter{Type: &expense})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		for _, item := range items {
			assert.Equal(t, models.TransactionTypeExpense, item.Type)
		}
	})

	t.Run("filter_by_category", func(t *testing.T) {
		category := middle.Category
		items, total, err := repo.ListByOwner(ctx, owner.ID, pagination.PageRequest{}, repository.TransactionFilter{Category: &category})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, middle.ID, items[0].ID)
	})
}

func TestRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db)
	repo := repository.NewBudgetRepository(db)
	budget := testutil.CreateTestBudget(t, db, owner.ID)

	t.Run("partial_update_keeps_other_columns", func(t *testing.T) {
		loaded, err := repo.Get(ctx, budget.ID)
		require.NoError(t, err)

		require.NoError(t, repo.Update(ctx, loaded, map[string]interface{}{"amount": 250.0}))
		assert.Equal(t, 250.0, loaded.Amount)
		assert.Equal(t, budget.Category, loaded.Category)
		assert.Equal(t, owner.ID, loaded.UserID)
	})

	t.Run("empty_change_set", func(t *testing.T) {
		loaded, err := repo.Get(ctx, budget.ID)
		require.NoError(t, err)
		before := *loaded

		require.NoError(t, repo.Update(ctx, loaded, map[string]interface{}{}))
		assert.Equal(t, before.Amount, loaded.Amount)
		assert.Equal(t, before.Category, loaded.Category)
		assert.True(t, before.StartDate.Equal(loaded.StartDate))
	})
}

func TestRepository_Remove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db)
	repo := repository.NewGoalRepository(db)
	goal := testutil.CreateTestGoal(t, db, owner.ID, nil)

	require.NoError(t, repo.Remove(ctx, goal.ID))
	_, err := repo.Get(ctx, goal.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, repo.Remove(ctx, goal.ID), "removing a missing id is a no-op")
}

func TestRepository_RemoveUserCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db)
	tx := testutil.CreateTestTransaction(t, db, owner.ID, models.TransactionTypeIncome, 5)
	budget := testutil.CreateTestBudget(t, db, owner.ID)
	goal := testutil.CreateTestGoal(t, db, owner.ID, nil)

	require.NoError(t, repository.NewUserRepository(db).Remove(ctx, owner.ID))

	_, err := repository.NewTransactionRepository(db).Get(ctx, tx.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repository.NewBudgetRepository(db).Get(ctx, budget.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repository.NewGoalRepository(db).Get(ctx, goal.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRepository_RollbackOnFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db)
	repo := repository.NewTransactionRepository(db)
	boom := errors.New("boom")

	err := database.WithinTransaction(ctx, db, func(ctx context.Context) error {
		tx := &models.Transaction{Amount: 1, Category: "Food", Type: models.TransactionTypeIncome, Date: time.Now()}
		if err := repo.CreateWithOwner(ctx, tx, owner.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, total, err := repo.ListByOwner(ctx, owner.ID, pagination.PageRequest{}, repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUserRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(db)
	existing := testutil.CreateTestUserWithEmail(t, db, "alice@example.com")

	t.Run("get_by_email_is_case_insensitive", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "  Alice@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
	})

	t.Run("get_by_email_missing", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		dup := &models.User{Email: "alice@example.com", HashedPassword: "x", IsActive: true}
		assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)
	})

	t.Run("list_all_by_id", func(t *testing.T) {
		second := testutil.CreateTestUser(t, db)
		users, total, err := repo.ListAll(ctx, pagination.PageRequest{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, users, 2)
		assert.Equal(t, existing.ID, users[0].ID)
		assert.Equal(t, second.ID, users[1].ID)
	})
}

func TestBudgetRepository_ListByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db)
	repo := repository.NewBudgetRepository(db)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	early := &models.Budget{Category: "Rent", Amount: 900, StartDate: start, EndDate: start.AddDate(0, 1, 0)}
	late := &models.Budget{Category: "Food", Amount: 300, StartDate: start.AddDate(0, 1, 0), EndDate: start.AddDate(0, 2, 0)}
	require.NoError(t, repo.CreateWithOwner(ctx, early, owner.ID))
	require.NoError(t, repo.CreateWithOwner(ctx, late, owner.ID))

	items, total, err := repo.ListByOwner(ctx, owner.ID, pagination.PageRequest{}, repository.BudgetFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, late.ID, items[0].ID)

	rent := "Rent"
	items, total, err = repo.ListByOwner(ctx, owner.ID, pagination.PageRequest{}, repository.BudgetFilter{Category: &rent})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, early.ID, items[0].ID)
}

func TestGoalRepository_ListByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db)
	repo := repository.NewGoalRepository(db)

	soon := time.Now().AddDate(0, 1, 0)
	later := time.Now().AddDate(1, 0, 0)
	open := testutil.CreateTestGoal(t, db, owner.ID, nil)
	far := testutil.CreateTestGoal(t, db, owner.ID, &later)
	near := testutil.CreateTestGoal(t, db, owner.ID, &soon)

	items, total, err := repo.ListByOwner(ctx, owner.ID, pagination.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, []uint{near.ID, far.ID, open.ID}, []uint{items[0].ID, items[1].ID, items[2].ID})
}
