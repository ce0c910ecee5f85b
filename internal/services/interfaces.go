package services

import (
	"context"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/repository"
)

// PrincipalResolver turns a bearer token into the user it was issued to.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// UserCreate is the input for self-registration. Registration never grants
// superuser rights.
type UserCreate struct {
	Email    string
	Password string
	FullName *string
}

// UserUpdate is a partial update of a user. Nil fields are left unchanged.
type UserUpdate struct {
	Email       *string
	Password    *string
	FullName    *string
	IsActive    *bool
	IsSuperuser *bool
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, in UserCreate) (*models.User, error)
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	UpdateUser(ctx context.Context, user *models.User, in UserUpdate) (*models.User, error)
	UpdateUserByID(ctx context.Context, id uint, in UserUpdate) (*models.User, error)
	EnsureSuperuser(ctx context.Context, email, password string) (*models.User, bool, error)
}

// TransactionInput is the input for creating a transaction. A zero Date
// means "now".
type TransactionInput struct {
	Amount      float64
	Category    string
	Type        models.TransactionType
	Date        time.Time
	Description *string
}

// TransactionPatch is a partial update of a transaction.
type TransactionPatch struct {
	Amount      *float64
	Category    *string
	Type        *models.TransactionType
	Date        *time.Time
	Description *string

	// Clear lists nullable columns (description) to set to NULL.
	Clear []string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter = repository.TransactionFilter

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID uint, in TransactionInput) (*models.Transaction, error)
	GetUserTransactions(ctx context.Context, userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(ctx context.Context, userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID uint, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID uint) error
}

// BudgetInput is the input for creating a budget. A zero StartDate means
// "now".
type BudgetInput struct {
	Category  string
	Amount    float64
	StartDate time.Time
	EndDate   time.Time
	Name      *string
}

// BudgetPatch is a partial update of a budget.
type BudgetPatch struct {
	Category  *string
	Amount    *float64
	StartDate *time.Time
	EndDate   *time.Time
	Name      *string

	// Clear lists nullable columns (name) to set to NULL.
	Clear []string
}

// BudgetFilter holds optional filter parameters for listing budgets.
type BudgetFilter = repository.BudgetFilter

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(ctx context.Context, userID uint, in BudgetInput) (*models.Budget, error)
	GetUserBudgets(ctx context.Context, userID uint, page pagination.PageRequest, filter BudgetFilter) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(ctx context.Context, userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID uint, patch BudgetPatch) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID uint) error
}

// GoalInput is the input for creating a goal.
type GoalInput struct {
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	Deadline      *time.Time
	Description   *string
}

// GoalPatch is a partial update of a goal.
type GoalPatch struct {
	Name          *string
	TargetAmount  *float64
	CurrentAmount *float64
	Deadline      *time.Time
	Description   *string

	// Clear lists nullable columns (deadline and description) to set to NULL.
	Clear []string
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(ctx context.Context, userID uint, in GoalInput) (*models.Goal, error)
	GetUserGoals(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(ctx context.Context, userID, goalID uint) (*models.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID uint, patch GoalPatch) (*models.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID uint) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
