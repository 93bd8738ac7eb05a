package localfile

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
	"github.com/google/uuid"
)

func (s *Store) budgetsPath() string {
	return filepath.Join(s.dir, budgetsFile)
}

func (s *Store) CreateBudget(_ context.Context, userID string, budget *models.Budget) error {
	if userID == "" {
		return models.ErrUnauthenticated
	}

	budget.UserID = userID
	if err := budget.BeforeSave(nil); err != nil {
		return err
	}

	if err := stamp(&budget.DefaultModel); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Budget](s.budgetsPath())
	if err != nil {
		return err
	}

	records = append(records, *budget)
	return save(s.budgetsPath(), records)
}

func (s *Store) UpdateBudget(_ context.Context, id uuid.UUID, patch storage.BudgetPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Budget](s.budgetsPath())
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
		return models.ResourceNotFound("budget")
	}

	patch.Apply(&records[idx])
	if err := records[idx].BeforeSave(nil); err != nil {
		return err
	}
	records[idx].UpdatedAt = now()

	return save(s.budgetsPath(), records)
}

func (s *Store) DeleteBudget(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Budget](s.budgetsPath())
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}

	return save(s.budgetsPath(), kept)
}

func (s *Store) ListBudgets(_ context.Context, userID string, filter storage.BudgetFilter) ([]models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Budget](s.budgetsPath())
	if err != nil {
		return nil, err
	}

	matches := make([]models.Budget, 0, len(records))
	for _, record := range records {
		if record.UserID != userID {
			continue
		}
		if filter.Period != "" && record.Period != filter.Period {
			continue
		}
		if filter.ActiveAt != nil && !record.ActiveAt(*filter.ActiveAt) {
			continue
		}
		matches = append(matches, record)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	return matches, nil
}
