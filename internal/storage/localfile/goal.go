package localfile

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
	"github.com/google/uuid"
)

func (s *Store) goalsPath() string {
	return filepath.Join(s.dir, goalsFile)
}

func (s *Store) CreateGoal(_ context.Context, userID string, goal *models.Goal) error {
	if userID == "" {
		return models.ErrUnauthenticated
	}

	goal.UserID = userID
	if err := goal.BeforeSave(nil); err != nil {
		return err
	}

	if err := goal.ValidateNew(now()); err != nil {
		return err
	}

	if err := stamp(&goal.DefaultModel); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Goal](s.goalsPath())
	if err != nil {
		return err
	}

	records = append(records, *goal)
	return save(s.goalsPath(), records)
}

func (s *Store) UpdateGoal(_ context.Context, id uuid.UUID, patch storage.GoalPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Goal](s.goalsPath())
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
		return models.ResourceNotFound("goal")
	}

	patch.Apply(&records[idx])
	if err := records[idx].BeforeSave(nil); err != nil {
		return err
	}
	records[idx].UpdatedAt = now()

	return save(s.goalsPath(), records)
}

func (s *Store) DeleteGoal(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Goal](s.goalsPath())
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}

	return save(s.goalsPath(), kept)
}

func (s *Store) ListGoals(_ context.Context, userID string, filter storage.GoalFilter) ([]models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[models.Goal](s.goalsPath())
	if err != nil {
		return nil, err
	}

	reference := now()
	if filter.Now != nil {
		reference = *filter.Now
	}

	matches := make([]models.Goal, 0, len(records))
	for _, record := range records {
		if record.UserID != userID {
			continue
		}
		if filter.ActiveOnly && !record.TargetDate.After(reference) {
			continue
		}
		matches = append(matches, record)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	return matches, nil
}
