package localfile

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
	"github.com/google/uuid"
)

func (s *Store) transactionsPath() string {
	return filepath.Join(s.dir, transactionsFile)
}

func (s *Store) CreateTransaction(_ context.Context, userID string, transaction *models.Transaction) error {
	if userID == "" {
		return models.ErrUnauthenticated
	}

	transaction.UserID = userID
	if err := transaction.BeforeSave(nil); err != nil {
		return err
	}

	if err := stamp(&transaction.DefaultModel); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Transaction](s.transactionsPath())
	if err != nil {
		return err
	}

	records = append(records, *transaction)
	return save(s.transactionsPath(), records)
}

func (s *Store) UpdateTransaction(_ context.Context, id uuid.UUID, patch storage.TransactionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Transaction](s.transactionsPath())
	if err != nil {
		return err
	}

	idx := -1
	for i := range records {
		if records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.ResourceNotFound("transaction")
	}

	patch.Apply(&records[idx])
	if err := records[idx].BeforeSave(nil); err != nil {
		return err
	}
	records[idx].UpdatedAt = now()

	return save(s.transactionsPath(), records)
}

func (s *Store) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Transaction](s.transactionsPath())
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}

	return save(s.transactionsPath(), kept)
}

func (s *Store) ListTransactions(_ context.Context, userID string, filter storage.TransactionFilter) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Transaction](s.transactionsPath())
	if err != nil {
		return nil, err
	}

	matches := make([]models.Transaction, 0, len(records))
	for _, record := range records {
		if record.UserID != userID {
			continue
		}
		if filter.CategoryID != "" && record.Category.CategoryID != filter.CategoryID {
			continue
		}
		if filter.From != nil && record.Date.Before(*filter.From) {
			continue
		}
		if filter.Until != nil && record.Date.After(*filter.Until) {
			continue
		}
		matches = append(matches, record)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	limit := filter.Limit
	if limit == 0 {
		limit = storage.DefaultListLimit
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}
