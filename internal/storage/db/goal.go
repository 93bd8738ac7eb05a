package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

func (s *Store) CreateGoal(ctx context.Context, userID string, goal *models.Goal) error {
	if userID == "" {
		return models.ErrUnauthenticated
	}

	if err := goal.ValidateNew(time.Now().In(time.UTC)); err != nil {
		return err
	}

	goal.UserID = userID
	return s.db.WithContext(ctx).Create(goal).Error
}

func (s *Store) UpdateGoal(ctx context.Context, id uuid.UUID, patch storage.GoalPatch) error {
	var goal models.Goal
	err := s.db.WithContext(ctx).First(&goal, "id = ?", id).Error
	if err != nil {
		return err
	}

	patch.Apply(&goal)
	return s.db.WithContext(ctx).Save(&goal).Error
}

func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Goal{}, "id = ?", id).Error
}

func (s *Store) ListGoals(ctx context.Context, userID string, filter storage.GoalFilter) ([]models.Goal, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filter.ActiveOnly {
		reference := time.Now().In(time.UTC)
		if filter.Now != nil {
			reference = *filter.Now
		}
		q = q.Where("target_date > ?", reference)
	}

	var goals []models.Goal
	err := q.Find(&goals).Error
	if err != nil {
		return nil, err
	}

	return goals, nil
}
