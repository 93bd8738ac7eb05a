package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single income or expense record owned by one user.
type Transaction struct {
	DefaultModel
	UserID      string              `json:"userId" gorm:"index"`
	Amount      decimal.Decimal     `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Description string              `json:"description"`
	Category    TransactionCategory `json:"category" gorm:"embedded;embeddedPrefix:category_"`
	Kind        CategoryKind        `json:"type"`
	Date        time.Time           `json:"date"`
}

// Validate checks the invariants for a transaction. It is called by the
// database adapter's BeforeSave hook and directly by the localfile adapter
// and the tracker.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if !t.Kind.Valid() {
		return ErrKindInvalid
	}

	registered, err := CategoryByID(t.Category.CategoryID)
	if err != nil {
		return err
	}

	if registered.Kind != t.Kind {
		return ErrKindMismatch
	}

	return nil
}

// BeforeSave validates the transaction and normalizes its fields. The
// category is replaced with the registry entry so that clients only need
// to send the identifier.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if registered, err := CategoryByID(t.Category.CategoryID); err == nil {
		t.Category = registered
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return t.Validate()
}

// AfterFind sets the timezone for the date to UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	if err := t.DefaultModel.AfterFind(tx); err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}
