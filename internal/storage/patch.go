package storage

import (
	"time"

	"github.com/financetrackr/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Patches enumerate the updatable fields per entity. A nil field is left
// untouched; set fields replace the current value. This keeps the merge
// semantics of partial updates statically checkable.

// TransactionPatch is a partial update for a transaction.
type TransactionPatch struct {
	Amount      *decimal.Decimal            `json:"amount"`
	Description *string                     `json:"description"`
	Category    *models.TransactionCategory `json:"category"`
	Kind        *models.CategoryKind        `json:"type"`
	Date        *time.Time                  `json:"date"`
}

// Apply merges the set fields into the transaction.
func (p TransactionPatch) Apply(t *models.Transaction) {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Kind != nil {
		t.Kind = *p.Kind
	}
	if p.Date != nil {
		t.Date = (*p.Date).In(time.UTC)
	}
}

// BudgetPatch is a partial update for a budget.
type BudgetPatch struct {
	Name      *string                     `json:"name"`
	Amount    *decimal.Decimal            `json:"amount"`
	Spent     *decimal.Decimal            `json:"spent"`
	Category  *models.TransactionCategory `json:"category"`
	Period    *models.BudgetPeriod        `json:"period"`
	StartDate *time.Time                  `json:"startDate"`
	EndDate   *time.Time                  `json:"endDate"`
}

// Apply merges the set fields into the budget.
func (p BudgetPatch) Apply(b *models.Budget) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Spent != nil {
		b.Spent = *p.Spent
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	if p.StartDate != nil {
		b.StartDate = (*p.StartDate).In(time.UTC)
	}
	if p.EndDate != nil {
		b.EndDate = (*p.EndDate).In(time.UTC)
	}
}

// GoalPatch is a partial update for a goal.
type GoalPatch struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	TargetDate    *time.Time       `json:"targetDate"`
	Category      *string          `json:"category"`
	Color         *string          `json:"color"`
}

// Apply merges the set fields into the goal.
func (p GoalPatch) Apply(g *models.Goal) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if p.TargetDate != nil {
		g.TargetDate = (*p.TargetDate).In(time.UTC)
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
}
