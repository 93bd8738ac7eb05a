// Package tracker implements the entity access layer: one in-memory,
// newest-first list per entity kind and user, with optimistic mutations.
//
// Mutations update the in-memory list first and persist through the storage
// adapter after. A failed persistence call is recorded on the list's error
// channel and returned to the caller, but the optimistic mutation is kept:
// the reconciliation policy is refetch-on-demand, not rollback. Operations
// never retry.
package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/financetrackr/backend/internal/storage"
)

func now() time.Time {
	return time.Now().In(time.UTC)
}

// Set bundles the three entity lists of one user.
type Set struct {
	Transactions *TransactionList
	Budgets      *BudgetList
	Goals        *GoalList
}

// Hub hands out one Set per user, creating and loading it on first use.
type Hub struct {
	mu    sync.Mutex
	store storage.Storage
	users map[string]*Set
}

// NewHub returns a Hub persisting through the given storage adapter.
func NewHub(store storage.Storage) *Hub {
	return &Hub{
		store: store,
		users: make(map[string]*Set),
	}
}

// ForUser returns the user's Set, loading all three lists from storage the
// first time the user is seen.
func (h *Hub) ForUser(ctx context.Context, userID string) (*Set, error) {
	h.mu.Lock()
	set, ok := h.users[userID]
	if !ok {
		set = &Set{
			Transactions: NewTransactionList(h.store),
			Budgets:      NewBudgetList(h.store),
			Goals:        NewGoalList(h.store),
		}
		h.users[userID] = set
	}
	h.mu.Unlock()

	if ok {
		return set, nil
	}

	if err := set.Transactions.Load(ctx, userID); err != nil {
		return set, err
	}
	if err := set.Budgets.Load(ctx, userID); err != nil {
		return set, err
	}
	if err := set.Goals.Load(ctx, userID); err != nil {
		return set, err
	}

	return set, nil
}

// Forget drops the user's Set so the next access loads fresh state.
func (h *Hub) Forget(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.users, userID)
}
