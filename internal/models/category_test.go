package models_test

import (
	"testing"

	"github.com/financetrackr/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRegistry(t *testing.T) {
	assert.Len(t, models.ExpenseCategories, 12)
	assert.Len(t, models.IncomeCategories, 8)
	assert.Len(t, models.AllCategories(), 20)

	// Identifiers are unique across both kinds
	seen := make(map[string]bool)
	for _, category := range models.AllCategories() {
		assert.False(t, seen[category.CategoryID], "duplicate category id %s", category.CategoryID)
		seen[category.CategoryID] = true

		assert.NotEmpty(t, category.Name)
		assert.NotEmpty(t, category.Icon)
		assert.NotEmpty(t, category.Color)
		assert.True(t, category.Kind.Valid())
	}
}

func TestCategoryByID(t *testing.T) {
	category, err := models.CategoryByID("food-dining")
	require.Nil(t, err)
	assert.Equal(t, "Food & Dining", category.Name)
	assert.Equal(t, models.KindExpense, category.Kind)

	category, err = models.CategoryByID("salary")
	require.Nil(t, err)
	assert.Equal(t, models.KindIncome, category.Kind)

	_, err = models.CategoryByID("does-not-exist")
	assert.ErrorIs(t, err, models.ErrCategoryInvalid)

	_, err = models.CategoryByID("")
	assert.ErrorIs(t, err, models.ErrCategoryInvalid)
}

func TestCategoriesByKind(t *testing.T) {
	for _, category := range models.CategoriesByKind(models.KindIncome) {
		assert.Equal(t, models.KindIncome, category.Kind)
	}

	for _, category := range models.CategoriesByKind(models.KindExpense) {
		assert.Equal(t, models.KindExpense, category.Kind)
	}
}

func TestCategoryKindValid(t *testing.T) {
	assert.True(t, models.KindIncome.Valid())
	assert.True(t, models.KindExpense.Valid())
	assert.False(t, models.CategoryKind("").Valid())
	assert.False(t, models.CategoryKind("savings").Valid())
}
