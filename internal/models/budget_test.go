package models_test

import (
	"testing"
	"time"

	"github.com/financetrackr/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validBudget() models.Budget {
	return models.Budget{
		Name:      "Groceries March",
		Amount:    decimal.NewFromInt(500),
		Category:  models.ExpenseCategories[0],
		Period:    models.PeriodMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestBudgetValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.Budget)
		err    error
	}{
		{"valid", func(_ *models.Budget) {}, nil},
		{"name missing", func(b *models.Budget) { b.Name = "   " }, models.ErrNameMissing},
		{"zero amount", func(b *models.Budget) { b.Amount = decimal.Zero }, models.ErrBudgetAmountNotPositive},
		{"invalid period", func(b *models.Budget) { b.Period = "daily" }, models.ErrBudgetPeriodInvalid},
		{"unknown category", func(b *models.Budget) { b.Category.CategoryID = "does-not-exist" }, models.ErrCategoryInvalid},
		{"end date before start", func(b *models.Budget) { b.EndDate = b.StartDate.AddDate(0, 0, -1) }, models.ErrBudgetEndDateNotAfterStart},
		{"end date equals start", func(b *models.Budget) { b.EndDate = b.StartDate }, models.ErrBudgetEndDateNotAfterStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := validBudget()
			tt.modify(&budget)

			err := budget.Validate()
			if tt.err == nil {
				assert.Nil(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestBudgetPeriodValid(t *testing.T) {
	assert.True(t, models.PeriodWeekly.Valid())
	assert.True(t, models.PeriodMonthly.Valid())
	assert.True(t, models.PeriodYearly.Valid())
	assert.False(t, models.BudgetPeriod("daily").Valid())
	assert.False(t, models.BudgetPeriod("").Valid())
}

func TestBudgetActiveAt(t *testing.T) {
	budget := validBudget()

	assert.True(t, budget.ActiveAt(budget.StartDate))
	assert.True(t, budget.ActiveAt(budget.EndDate))
	assert.True(t, budget.ActiveAt(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, budget.ActiveAt(budget.StartDate.AddDate(0, 0, -1)))
	assert.False(t, budget.ActiveAt(budget.EndDate.AddDate(0, 0, 1)))
}
