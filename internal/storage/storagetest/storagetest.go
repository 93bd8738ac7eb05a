// Package storagetest is a conformance suite for implementations of the
// storage contract. Both adapters run the same suite.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

// Suite exercises the storage contract. Embed it and set Open to a
// factory returning a fresh, empty store.
type Suite struct {
	suite.Suite
	Open func(t *testing.T) storage.Storage

	store storage.Storage
}

func (suite *Suite) SetupTest() {
	suite.store = suite.Open(suite.T())
}

func (suite *Suite) TearDownTest() {
	suite.Require().Nil(suite.store.Close())
}

func (suite *Suite) transaction(userID string, amount float64) models.Transaction {
	return models.Transaction{
		UserID:   userID,
		Amount:   decimal.NewFromFloat(amount),
		Category: models.ExpenseCategories[0],
		Kind:     models.KindExpense,
		Date:     time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *Suite) budget(userID string) models.Budget {
	return models.Budget{
		UserID:    userID,
		Name:      "Groceries January",
		Amount:    decimal.NewFromInt(500),
		Category:  models.ExpenseCategories[0],
		Period:    models.PeriodMonthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *Suite) goal(userID string) models.Goal {
	return models.Goal{
		UserID:       userID,
		Name:         "Emergency Fund",
		TargetAmount: decimal.NewFromInt(10000),
		TargetDate:   time.Now().In(time.UTC).AddDate(1, 0, 0),
		Category:     "Savings",
	}
}

func (suite *Suite) TestTransactionLifecycle() {
	ctx := context.Background()

	transaction := suite.transaction("alice", 47.11)
	suite.Require().Nil(suite.store.CreateTransaction(ctx, "alice", &transaction))
	suite.Assert().NotEqual(uuid.Nil, transaction.ID)
	suite.Assert().False(transaction.CreatedAt.IsZero())

	list, err := suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().True(list[0].Amount.Equal(decimal.NewFromFloat(47.11)))
	suite.Assert().Equal(time.UTC, list[0].Date.Location())

	updatedBefore := list[0].UpdatedAt

	// The update timestamp must strictly increase, give it headroom
	// above the stored timestamp precision
	time.Sleep(20 * time.Millisecond)

	amount := decimal.NewFromInt(100)
	description := "Adjusted"
	err = suite.store.UpdateTransaction(ctx, transaction.ID, storage.TransactionPatch{
		Amount:      &amount,
		Description: &description,
	})
	suite.Require().Nil(err)

	list, err = suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().True(list[0].Amount.Equal(amount))
	suite.Assert().Equal("Adjusted", list[0].Description)
	suite.Assert().True(list[0].UpdatedAt.After(updatedBefore),
		"update timestamp %s did not advance past %s", list[0].UpdatedAt, updatedBefore)

	suite.Require().Nil(suite.store.DeleteTransaction(ctx, transaction.ID))

	list, err = suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Empty(list)

	// Deleting again must not fail
	suite.Assert().Nil(suite.store.DeleteTransaction(ctx, transaction.ID))
}

func (suite *Suite) TestCreateUnauthenticated() {
	ctx := context.Background()

	transaction := suite.transaction("", 1)
	suite.Assert().ErrorIs(suite.store.CreateTransaction(ctx, "", &transaction), models.ErrUnauthenticated)

	budget := suite.budget("")
	suite.Assert().ErrorIs(suite.store.CreateBudget(ctx, "", &budget), models.ErrUnauthenticated)

	goal := suite.goal("")
	suite.Assert().ErrorIs(suite.store.CreateGoal(ctx, "", &goal), models.ErrUnauthenticated)
}

func (suite *Suite) TestCreateValidates() {
	ctx := context.Background()

	transaction := suite.transaction("alice", 1)
	transaction.Amount = decimal.Zero
	suite.Assert().ErrorIs(suite.store.CreateTransaction(ctx, "alice", &transaction), models.ErrTransactionAmountNotPositive)

	budget := suite.budget("alice")
	budget.Name = ""
	suite.Assert().ErrorIs(suite.store.CreateBudget(ctx, "alice", &budget), models.ErrNameMissing)

	goal := suite.goal("alice")
	goal.TargetDate = time.Now().In(time.UTC).AddDate(0, 0, -1)
	suite.Assert().ErrorIs(suite.store.CreateGoal(ctx, "alice", &goal), models.ErrGoalTargetDateNotInFuture)

	// Nothing was persisted
	list, err := suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Empty(list)
}

func (suite *Suite) TestUpdateNotFound() {
	ctx := context.Background()

	err := suite.store.UpdateTransaction(ctx, uuid.New(), storage.TransactionPatch{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().EqualError(err, "there is no transaction matching your query")

	err = suite.store.UpdateBudget(ctx, uuid.New(), storage.BudgetPatch{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().EqualError(err, "there is no budget matching your query")

	err = suite.store.UpdateGoal(ctx, uuid.New(), storage.GoalPatch{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().EqualError(err, "there is no goal matching your query")
}

func (suite *Suite) TestCreateHonorsPresetID() {
	ctx := context.Background()

	id := uuid.New()
	transaction := suite.transaction("alice", 1)
	transaction.ID = id

	suite.Require().Nil(suite.store.CreateTransaction(ctx, "alice", &transaction))
	suite.Assert().Equal(id, transaction.ID)

	list, err := suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal(id, list[0].ID)
}

func (suite *Suite) TestUserIsolation() {
	ctx := context.Background()

	one := suite.transaction("u1", 10)
	suite.Require().Nil(suite.store.CreateTransaction(ctx, "u1", &one))

	two := suite.transaction("u2", 20)
	suite.Require().Nil(suite.store.CreateTransaction(ctx, "u2", &two))

	list, err := suite.store.ListTransactions(ctx, "u1", storage.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal("u1", list[0].UserID)

	// Deleting u2's record must not disturb u1's
	suite.Require().Nil(suite.store.DeleteTransaction(ctx, two.ID))

	list, err = suite.store.ListTransactions(ctx, "u1", storage.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(list, 1)
}

func (suite *Suite) TestListOrdering() {
	ctx := context.Background()

	// Insert out of order, the list must come back newest first
	older := suite.transaction("alice", 1)
	older.CreatedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().Nil(suite.store.CreateTransaction(ctx, "alice", &older))

	newest := suite.transaction("alice", 3)
	newest.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().Nil(suite.store.CreateTransaction(ctx, "alice", &newest))

	middle := suite.transaction("alice", 2)
	middle.CreatedAt = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().Nil(suite.store.CreateTransaction(ctx, "alice", &middle))

	list, err := suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(list, 3)
	suite.Assert().Equal(newest.ID, list[0].ID)
	suite.Assert().Equal(middle.ID, list[1].ID)
	suite.Assert().Equal(older.ID, list[2].ID)
}

func (suite *Suite) TestTransactionFilters() {
	ctx := context.Background()

	food := suite.transaction("alice", 10)
	food.Date = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	suite.Require().Nil(suite.store.CreateTransaction(ctx, "alice", &food))

	travel := suite.transaction("alice", 20)
	travel.Category, _ = models.CategoryByID("travel")
	travel.Date = time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	suite.Require().Nil(suite.store.CreateTransaction(ctx, "alice", &travel))

	list, err := suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{CategoryID: "travel"})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal("travel", list[0].Category.CategoryID)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	list, err = suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{From: &from})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal(travel.ID, list[0].ID)

	until := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	list, err = suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{Until: &until})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal(food.ID, list[0].ID)

	list, err = suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{Limit: 1})
	suite.Require().Nil(err)
	suite.Assert().Len(list, 1)

	list, err = suite.store.ListTransactions(ctx, "alice", storage.TransactionFilter{Limit: -1})
	suite.Require().Nil(err)
	suite.Assert().Len(list, 2)
}

func (suite *Suite) TestBudgetFilters() {
	ctx := context.Background()

	january := suite.budget("alice")
	suite.Require().Nil(suite.store.CreateBudget(ctx, "alice", &january))

	yearly := suite.budget("alice")
	yearly.Name = "Travel 2024"
	yearly.Period = models.PeriodYearly
	yearly.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	yearly.EndDate = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	suite.Require().Nil(suite.store.CreateBudget(ctx, "alice", &yearly))

	list, err := suite.store.ListBudgets(ctx, "alice", storage.BudgetFilter{Period: models.PeriodYearly})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal("Travel 2024", list[0].Name)

	// Mid-February only the yearly budget is active
	at := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	list, err = suite.store.ListBudgets(ctx, "alice", storage.BudgetFilter{ActiveAt: &at})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal(yearly.ID, list[0].ID)
}

func (suite *Suite) TestBudgetDateRoundTrip() {
	ctx := context.Background()

	budget := suite.budget("alice")
	suite.Require().Nil(suite.store.CreateBudget(ctx, "alice", &budget))

	list, err := suite.store.ListBudgets(ctx, "alice", storage.BudgetFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)

	suite.Assert().True(list[0].StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	suite.Assert().True(list[0].EndDate.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	suite.Assert().Equal(time.UTC, list[0].StartDate.Location())
	suite.Assert().Equal(time.UTC, list[0].EndDate.Location())
}

func (suite *Suite) TestGoalFilters() {
	ctx := context.Background()

	active := suite.goal("alice")
	suite.Require().Nil(suite.store.CreateGoal(ctx, "alice", &active))

	expired := suite.goal("alice")
	expired.Name = "Old Laptop"
	expired.TargetDate = time.Now().In(time.UTC).AddDate(1, 0, 0)
	suite.Require().Nil(suite.store.CreateGoal(ctx, "alice", &expired))

	// Move the target date into the past, creation would reject it
	past := time.Now().In(time.UTC).AddDate(0, -1, 0)
	suite.Require().Nil(suite.store.UpdateGoal(ctx, expired.ID, storage.GoalPatch{TargetDate: &past}))

	list, err := suite.store.ListGoals(ctx, "alice", storage.GoalFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(list, 2)

	list, err = suite.store.ListGoals(ctx, "alice", storage.GoalFilter{ActiveOnly: true})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().Equal(active.ID, list[0].ID)
}

func (suite *Suite) TestGoalContributionPatch() {
	ctx := context.Background()

	goal := suite.goal("alice")
	suite.Require().Nil(suite.store.CreateGoal(ctx, "alice", &goal))

	amount := decimal.NewFromInt(2500)
	suite.Require().Nil(suite.store.UpdateGoal(ctx, goal.ID, storage.GoalPatch{CurrentAmount: &amount}))

	list, err := suite.store.ListGoals(ctx, "alice", storage.GoalFilter{})
	suite.Require().Nil(err)
	suite.Require().Len(list, 1)
	suite.Assert().True(list[0].CurrentAmount.Equal(amount))
}
