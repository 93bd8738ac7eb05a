package tracker

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

// TransactionList owns the in-memory transaction list of one user.
type TransactionList struct {
	mu      sync.Mutex
	store   storage.Storage
	userID  string
	items   []models.Transaction
	loading bool
	err     error
}

// NewTransactionList returns an empty list persisting through store.
func NewTransactionList(store storage.Storage) *TransactionList {
	return &TransactionList{store: store}
}

// Load initializes the list for a user. An empty userID clears the list
// without touching storage.
func (l *TransactionList) Load(ctx context.Context, userID string) error {
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

	items, err := l.store.ListTransactions(ctx, userID, storage.TransactionFilter{})

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
func (l *TransactionList) Refetch(ctx context.Context) error {
	l.mu.Lock()
	userID := l.userID
	l.mu.Unlock()

	return l.Load(ctx, userID)
}

// Items returns a copy of the in-memory list, newest first.
func (l *TransactionList) Items() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]models.Transaction, len(l.items))
	copy(items, l.items)
	return items
}

// Get returns the transaction with the given id from memory.
func (l *TransactionList) Get(id uuid.UUID) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, item := range l.items {
		if item.ID == id {
			return item, nil
		}
	}

	return models.Transaction{}, models.ResourceNotFound("transaction")
}

// Loading reports whether a load is in flight.
func (l *TransactionList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the last error surfaced by an operation, or nil.
func (l *TransactionList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Add validates the transaction, prepends it to the in-memory list and
// persists it. It returns the generated identifier. A persistence failure
// leaves the optimistic copy in place.
func (l *TransactionList) Add(ctx context.Context, transaction models.Transaction) (uuid.UUID, error) {
	l.mu.Lock()
	if l.userID == "" {
		l.mu.Unlock()
		return uuid.Nil, models.ErrUnauthenticated
	}

	transaction.UserID = l.userID
	if err := transaction.BeforeSave(nil); err != nil {
		l.mu.Unlock()
		return uuid.Nil, err
	}

	transaction.ID = uuid.New()
	ts := now()
	transaction.CreatedAt = ts
	transaction.UpdatedAt = ts

	l.items = append([]models.Transaction{transaction}, l.items...)
	l.mu.Unlock()

	if err := l.store.CreateTransaction(ctx, transaction.UserID, &transaction); err != nil {
		l.setErr(err)
		return transaction.ID, err
	}

	return transaction.ID, nil
}

// Update merges the patch into the matching in-memory record, refreshes its
// update timestamp and persists the patch.
func (l *TransactionList) Update(ctx context.Context, id uuid.UUID, patch storage.TransactionPatch) error {
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
		return models.ResourceNotFound("transaction")
	}

	patch.Apply(&l.items[idx])
	l.items[idx].UpdatedAt = now()
	l.mu.Unlock()

	if err := l.store.UpdateTransaction(ctx, id, patch); err != nil {
		l.setErr(err)
		return err
	}

	return nil
}

// Delete removes the record from the in-memory list and persists the
// deletion. Deleting an unknown id is a no-op.
func (l *TransactionList) Delete(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	kept := l.items[:0]
	for _, item := range l.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
	l.mu.Unlock()

	if err := l.store.DeleteTransaction(ctx, id); err != nil {
		l.setErr(err)
		return err
	}

	return nil
}

func (l *TransactionList) setErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}
