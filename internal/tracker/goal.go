package tracker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

// GoalList owns the in-memory goal list of one user.
type GoalList struct {
	mu      sync.Mutex
	store   storage.Storage
	userID  string
	items   []models.Goal
	loading bool
	err     error
}

// NewGoalList returns an empty list persisting through store.
func NewGoalList(store storage.Storage) *GoalList {
	return &GoalList{store: store}
}

// Load initializes the list for a user. An empty userID clears the list
// without touching storage.
func (l *GoalList) Load(ctx context.Context, userID string) error {
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

	items, err := l.store.ListGoals(ctx, userID, storage.GoalFilter{})

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
func (l *GoalList) Refetch(ctx context.Context) error {
	l.mu.Lock()
	userID := l.userID
	l.mu.Unlock()

	return l.Load(ctx, userID)
}

// Items returns a copy of the in-memory list, newest first.
func (l *GoalList) Items() []models.Goal {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]models.Goal, len(l.items))
	copy(items, l.items)
	return items
}

// Get returns the goal with the given id from memory.
func (l *GoalList) Get(id uuid.UUID) (models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, item := range l.items {
		if item.ID == id {
			return item, nil
		}
	}

	return models.Goal{}, models.ResourceNotFound("goal")
}

// Loading reports whether a load is in flight.
func (l *GoalList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the last error surfaced by an operation, or nil.
func (l *GoalList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Add validates the goal, zeroes the current amount, prepends the goal to
// the in-memory list and persists it. It returns the generated identifier.
func (l *GoalList) Add(ctx context.Context, goal models.Goal) (uuid.UUID, error) {
	l.mu.Lock()
	if l.userID == "" {
		l.mu.Unlock()
		return uuid.Nil, models.ErrUnauthenticated
	}

	goal.UserID = l.userID
	goal.CurrentAmount = decimal.Zero
	if err := goal.BeforeSave(nil); err != nil {
		l.mu.Unlock()
		return uuid.Nil, err
	}
	if err := goal.ValidateNew(now()); err != nil {
		l.mu.Unlock()
		return uuid.Nil, err
	}

	goal.ID = uuid.New()
	ts := now()
	goal.CreatedAt = ts
	goal.UpdatedAt = ts

	l.items = append([]models.Goal{goal}, l.items...)
	l.mu.Unlock()

	if err := l.store.CreateGoal(ctx, goal.UserID, &goal); err != nil {
		l.setErr(err)
		return goal.ID, err
	}

	return goal.ID, nil
}

// Update merges the patch into the matching in-memory record, refreshes its
// update timestamp and persists the patch.
func (l *GoalList) Update(ctx context.Context, id uuid.UUID, patch storage.GoalPatch) error {
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
		return models.ResourceNotFound("goal")
	}

	patch.Apply(&l.items[idx])
	l.items[idx].UpdatedAt = now()
	l.mu.Unlock()

	if err := l.store.UpdateGoal(ctx, id, patch); err != nil {
		l.setErr(err)
		return err
	}

	return nil
}

// Delete removes the record from the in-memory list and persists the
// deletion. Deleting an unknown id is a no-op.
func (l *GoalList) Delete(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	kept := l.items[:0]
	for _, item := range l.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
	l.mu.Unlock()

	if err := l.store.DeleteGoal(ctx, id); err != nil {
		l.setErr(err)
		return err
	}

	return nil
}

// AddToGoal reads the goal's current amount, adds the contribution and
// applies the result with Update's merge semantics. The list mutex
// serializes concurrent contributions to the same list, so sequential
// arithmetic holds in-process; the storage-level read-modify-write is still
// not atomic across processes.
func (l *GoalList) AddToGoal(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, models.ErrGoalContributionNotPositive
	}

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
		return decimal.Zero, models.ResourceNotFound("goal")
	}

	newAmount := l.items[idx].CurrentAmount.Add(amount)
	l.items[idx].CurrentAmount = newAmount
	l.items[idx].UpdatedAt = now()
	l.mu.Unlock()

	patch := storage.GoalPatch{CurrentAmount: &newAmount}
	if err := l.store.UpdateGoal(ctx, id, patch); err != nil {
		l.setErr(err)
		return newAmount, err
	}

	return newAmount, nil
}

func (l *GoalList) setErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}
