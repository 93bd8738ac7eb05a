package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrUnauthenticated  = errors.New("you need to be authenticated for this")
)

// ResourceNotFound wraps ErrResourceNotFound with the name of the resource
// so that clients see a full sentence.
func ResourceNotFound(name string) error {
	return fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
}

// Validation errors. These are returned before any state is mutated.
var (
	ErrNameMissing                  = errors.New("a name is required")
	ErrCategoryInvalid              = errors.New("the specified category does not exist")
	ErrKindInvalid                  = errors.New("type must be one of 'income' and 'expense'")
	ErrKindMismatch                 = errors.New("the transaction type must match the type of its category")
	ErrTransactionAmountNotPositive = errors.New("transaction amounts must be larger than zero")
	ErrBudgetAmountNotPositive      = errors.New("budget amounts must be larger than zero")
	ErrBudgetPeriodInvalid          = errors.New("period must be one of 'weekly', 'monthly' and 'yearly'")
	ErrBudgetEndDateNotAfterStart   = errors.New("the budget end date must be after its start date")
	ErrGoalAmountNotPositive        = errors.New("goal amounts must be larger than zero")
	ErrGoalTargetDateNotInFuture    = errors.New("the goal target date must be in the future")
	ErrGoalContributionNotPositive  = errors.New("the amount added to a goal must be larger than zero")
)
