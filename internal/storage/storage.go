// Package storage defines the contract for the persistence layer.
//
// Two implementations exist: db (gorm over sqlite or postgres, the remote
// variant) and localfile (one JSON blob per entity kind, the local device
// storage variant). They are interchangeable from the tracker's point of
// view.
package storage

import (
	"context"
	"time"

	"github.com/financetrackr/backend/internal/models"
	"github.com/google/uuid"
)

// TransactionFilter narrows down ListTransactions results.
type TransactionFilter struct {
	CategoryID string     // Only transactions of this category
	From       *time.Time // Only transactions on or after this date
	Until      *time.Time // Only transactions on or before this date
	Limit      int        // Maximum number of transactions, defaults to 50. Negative means no limit.
}

// BudgetFilter narrows down ListBudgets results.
type BudgetFilter struct {
	Period   models.BudgetPeriod // Only budgets with this period
	ActiveAt *time.Time          // Only budgets whose date range contains this date
}

// GoalFilter narrows down ListGoals results.
type GoalFilter struct {
	ActiveOnly bool       // Only goals whose target date is in the future
	Now        *time.Time // Reference time for ActiveOnly, defaults to time.Now
}

// Storage is the contract the entity access layer persists through.
//
// Create assigns the id and both timestamps unless the caller already set
// them, and fails with models.ErrUnauthenticated when userID is empty.
// Update applies a patch and refreshes the update timestamp; an unknown id
// is models.ErrResourceNotFound. Delete is idempotent, deleting an absent
// id is not an error and must not disturb other records. List returns only
// the given user's records, newest-first by creation time.
type Storage interface {
	CreateTransaction(ctx context.Context, userID string, transaction *models.Transaction) error
	UpdateTransaction(ctx context.Context, id uuid.UUID, patch TransactionPatch) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error)

	CreateBudget(ctx context.Context, userID string, budget *models.Budget) error
	UpdateBudget(ctx context.Context, id uuid.UUID, patch BudgetPatch) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
	ListBudgets(ctx context.Context, userID string, filter BudgetFilter) ([]models.Budget, error)

	CreateGoal(ctx context.Context, userID string, goal *models.Goal) error
	UpdateGoal(ctx context.Context, id uuid.UUID, patch GoalPatch) error
	DeleteGoal(ctx context.Context, id uuid.UUID) error
	ListGoals(ctx context.Context, userID string, filter GoalFilter) ([]models.Goal, error)

	Close() error
}

// DefaultListLimit is the number of transactions returned when the filter
// does not set a limit.
const DefaultListLimit = 50
