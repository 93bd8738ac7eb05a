package models_test

import (
	"testing"
	"time"

	"github.com/financetrackr/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validGoal() models.Goal {
	return models.Goal{
		Name:         "Emergency Fund",
		TargetAmount: decimal.NewFromInt(10000),
		TargetDate:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Category:     "Savings",
		Color:        "hsl(142, 76%, 36%)",
	}
}

func TestGoalValidate(t *testing.T) {
	goal := validGoal()
	assert.Nil(t, goal.Validate())

	goal.Name = "  "
	assert.ErrorIs(t, goal.Validate(), models.ErrNameMissing)

	goal = validGoal()
	goal.TargetAmount = decimal.Zero
	assert.ErrorIs(t, goal.Validate(), models.ErrGoalAmountNotPositive)
}

func TestGoalValidateNew(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	goal := validGoal()
	assert.Nil(t, goal.ValidateNew(now))

	goal.TargetDate = now
	assert.ErrorIs(t, goal.ValidateNew(now), models.ErrGoalTargetDateNotInFuture)

	goal.TargetDate = now.AddDate(0, 0, -1)
	assert.ErrorIs(t, goal.ValidateNew(now), models.ErrGoalTargetDateNotInFuture)

	// A past target date is fine for existing goals
	assert.Nil(t, goal.Validate())
}

func TestGoalProgress(t *testing.T) {
	goal := validGoal()
	assert.Equal(t, 0.0, goal.Progress())
	assert.False(t, goal.Completed())

	goal.CurrentAmount = decimal.NewFromInt(2500)
	assert.InDelta(t, 0.25, goal.Progress(), 0.0001)

	goal.CurrentAmount = decimal.NewFromInt(10000)
	assert.Equal(t, 1.0, goal.Progress())
	assert.True(t, goal.Completed())

	// Overshooting contributions cap the ratio at 1
	goal.CurrentAmount = decimal.NewFromInt(15000)
	assert.Equal(t, 1.0, goal.Progress())
	assert.True(t, goal.Completed())

	goal.TargetAmount = decimal.Zero
	assert.Equal(t, 0.0, goal.Progress())
}
