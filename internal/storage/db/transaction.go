package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

func (s *Store) CreateTransaction(ctx context.Context, userID string, transaction *models.Transaction) error {
	if userID == "" {
		return models.ErrUnauthenticated
	}

	transaction.UserID = userID
	return s.db.WithContext(ctx).Create(transaction).Error
}

func (s *Store) UpdateTransaction(ctx context.Context, id uuid.UUID, patch storage.TransactionPatch) error {
	var transaction models.Transaction
	err := s.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if err != nil {
		return err
	}

	patch.Apply(&transaction)
	return s.db.WithContext(ctx).Save(&transaction).Error
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id).Error
}

func (s *Store) ListTransactions(ctx context.Context, userID string, filter storage.TransactionFilter) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}

	if filter.Until != nil {
		q = q.Where("date <= ?", *filter.Until)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = storage.DefaultListLimit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
