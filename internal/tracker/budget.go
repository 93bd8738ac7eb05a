package tracker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

// BudgetList owns the in-memory budget list of one user.
type BudgetList struct {
	mu      sync.Mutex
	store   storage.Storage
	userID  string
	items   []models.Budget
	loading bool
	err     error
}

// NewBudgetList returns an empty list persisting through store.
func NewBudgetList(store storage.Storage) *BudgetList {
	return &BudgetList{store: store}
}

// Load initializes the list for a user. An empty userID clears the list
// without touching storage.
func (l *BudgetList) Load(ctx context.Context, userID string) error {
	l.mu.Lock()
	l.userID = userID
	if userID == "" {
		l.items = nil
		l.loading = false
		l.err = nil
		l.mu.Unlock()
		return nil
	}

	l.loading = true
	l.err = nil
	l.mu.Unlock()

	items, err := l.store.ListBudgets(ctx, userID, storage.BudgetFilter{})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		l.err = err
		return err
	}

	l.items = items
	return nil
}

// Refetch re-runs the initial load for the current user.
func (l *BudgetList) Refetch(ctx context.Context) error {
	l.mu.Lock()
	userID := l.userID
	l.mu.Unlock()

	return l.Load(ctx, userID)
}

// Items returns a copy of the in-memory list, newest first.
func (l *BudgetList) Items() []models.Budget {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]models.Budget, len(l.items))
	copy(items, l.items)
	return items
}

// Get returns the budget with the given id from memory.
func (l *BudgetList) Get(id uuid.UUID) (models.Budget, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, item := range l.items {
		if item.ID == id {
			return item, nil
		}
	}

	return models.Budget{}, models.ResourceNotFound("budget")
}

// Loading reports whether a load is in flight.
func (l *BudgetList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the last error surfaced by an operation, or nil.
func (l *BudgetList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Add validates the budget, zeroes the spent amount, prepends the budget to
// the in-memory list and persists it. It returns the generated identifier.
func (l *BudgetList) Add(ctx context.Context, budget models.Budget) (uuid.UUID, error) {
	l.mu.Lock()
	if l.userID == "" {
		l.mu.Unlock()
		return uuid.Nil, models.ErrUnauthenticated
	}

	budget.UserID = l.userID
	budget.Spent = decimal.Zero
	if err := budget.BeforeSave(nil); err != nil {
		l.mu.Unlock()
		return uuid.Nil, err
	}

	budget.ID = uuid.New()
	ts := now()
	budget.CreatedAt = ts
	budget.UpdatedAt = ts

	l.items = append([]models.Budget{budget}, l.items...)
	l.mu.Unlock()

	if err := l.store.CreateBudget(ctx, budget.UserID, &budget); err != nil {
		l.setErr(err)
		return budget.ID, err
	}

	return budget.ID, nil
}

// Update merges the patch into the matching in-memory record, refreshes its
// update timestamp and persists the patch.
func (l *BudgetList) Update(ctx context.Context, id uuid.UUID, patch storage.BudgetPatch) error {
	l.mu.Lock()
	idx := -1
	for i := range l.items {
		if l.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return models.ResourceNotFound("budget")
	}

	patch.Apply(&l.items[idx])
	l.items[idx].UpdatedAt = now()
	l.mu.Unlock()

	if err := l.store.UpdateBudget(ctx, id, patch); err != nil {
		l.setErr(err)
		return err
	}

	return nil
}

// Delete removes the record from the in-memory list and persists the
// deletion. Deleting an unknown id is a no-op.
func (l *BudgetList) Delete(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	kept := l.items[:0]
	for _, item := range l.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
	l.mu.Unlock()

	if err := l.store.DeleteBudget(ctx, id); err != nil {
		l.setErr(err)
		return err
	}

	return nil
}

func (l *BudgetList) setErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}
