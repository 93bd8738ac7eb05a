package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings goal. CurrentAmount starts at zero and only ever grows
// through contributions.
//
// The category is a free-text label chosen by the user, it is not linked to
// the transaction category registry.
type Goal struct {
	DefaultModel
	UserID        string          `json:"userId" gorm:"index"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount" gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal `json:"currentAmount" gorm:"type:DECIMAL(20,8)"`
	TargetDate    time.Time       `json:"targetDate"`
	Category      string          `json:"category"`
	Color         string          `json:"color"`
}

// Validate checks the invariants for a goal at creation time.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrNameMissing
	}

	if !g.TargetAmount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	return nil
}

// ValidateNew additionally requires the target date to be in the future.
// Updates may move the target date freely, so this check only runs on
// creation.
func (g Goal) ValidateNew(now time.Time) error {
	if err := g.Validate(); err != nil {
		return err
	}

	if !g.TargetDate.After(now) {
		return ErrGoalTargetDateNotInFuture
	}

	return nil
}

// Completed reports whether the goal has been reached. This is derived
// state, it is never stored.
func (g Goal) Completed() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Progress returns the completion ratio, capped at 1.
func (g Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}

	progress, _ := g.CurrentAmount.Div(g.TargetAmount).Float64()
	if progress > 1 {
		return 1
	}
	return progress
}

// BeforeSave validates the goal and normalizes its fields.
func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Description = strings.TrimSpace(g.Description)
	g.TargetDate = g.TargetDate.In(time.UTC)

	return g.Validate()
}

// AfterFind sets the timezone for the target date to UTC.
func (g *Goal) AfterFind(tx *gorm.DB) error {
	if err := g.DefaultModel.AfterFind(tx); err != nil {
		return err
	}

	g.TargetDate = g.TargetDate.In(time.UTC)
	return nil
}
