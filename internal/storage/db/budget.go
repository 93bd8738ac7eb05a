package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

func (s *Store) CreateBudget(ctx context.Context, userID string, budget *models.Budget) error {
	if userID == "" {
		return models.ErrUnauthenticated
	}

	budget.UserID = userID
	return s.db.WithContext(ctx).Create(budget).Error
}

func (s *Store) UpdateBudget(ctx context.Context, id uuid.UUID, patch storage.BudgetPatch) error {
	var budget models.Budget
	err := s.db.WithContext(ctx).First(&budget, "id = ?", id).Error
	if err != nil {
		return err
	}

	patch.Apply(&budget)
	return s.db.WithContext(ctx).Save(&budget).Error
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Budget{}, "id = ?", id).Error
}

func (s *Store) ListBudgets(ctx context.Context, userID string, filter storage.BudgetFilter) ([]models.Budget, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filter.Period != "" {
		q = q.Where("period = ?", filter.Period)
	}

	if filter.ActiveAt != nil {
		q = q.Where("start_date <= ? AND end_date >= ?", *filter.ActiveAt, *filter.ActiveAt)
	}

	var budgets []models.Budget
	err := q.Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	return budgets, nil
}
