package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetPeriod is the recurrence of a budget.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether the period is one of the known values.
func (p BudgetPeriod) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodYearly
}

// Budget is a spending target for one category over a date range.
//
// Spent is mutated independently of transactions, there is no automatic
// linkage between the two.
type Budget struct {
	DefaultModel
	UserID    string              `json:"userId" gorm:"index"`
	Name      string              `json:"name"`
	Amount    decimal.Decimal     `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Spent     decimal.Decimal     `json:"spent" gorm:"type:DECIMAL(20,8)"`
	Category  TransactionCategory `json:"category" gorm:"embedded;embeddedPrefix:category_"`
	Period    BudgetPeriod        `json:"period"`
	StartDate time.Time           `json:"startDate"`
	EndDate   time.Time           `json:"endDate"`
}

// Validate checks the invariants for a budget.
func (b Budget) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrNameMissing
	}

	if !b.Amount.IsPositive() {
		return ErrBudgetAmountNotPositive
	}

	if !b.Period.Valid() {
		return ErrBudgetPeriodInvalid
	}

	if _, err := CategoryByID(b.Category.CategoryID); err != nil {
		return err
	}

	if !b.EndDate.After(b.StartDate) {
		return ErrBudgetEndDateNotAfterStart
	}

	return nil
}

// BeforeSave validates the budget and normalizes its fields. The category
// is replaced with the registry entry so that clients only need to send
// the identifier.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)

	if registered, err := CategoryByID(b.Category.CategoryID); err == nil {
		b.Category = registered
	}
	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)

	return b.Validate()
}

// AfterFind sets the timezone for the dates to UTC.
func (b *Budget) AfterFind(tx *gorm.DB) error {
	if err := b.DefaultModel.AfterFind(tx); err != nil {
		return err
	}

	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)
	return nil
}

// ActiveAt reports whether the date falls into the budget's range.
func (b Budget) ActiveAt(t time.Time) bool {
	return !t.Before(b.StartDate) && !t.After(b.EndDate)
}
