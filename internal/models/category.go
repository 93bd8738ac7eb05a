package models

// CategoryKind partitions categories, transactions and budgets into
// income and expense.
type CategoryKind string

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
)

// Valid reports whether the kind is one of the two known values.
func (k CategoryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// TransactionCategory is an entry of the fixed category registry.
//
// Categories are immutable and never created or destroyed at runtime.
// Transactions and budgets embed a denormalized copy instead of referencing
// the registry.
type TransactionCategory struct {
	CategoryID string       `json:"id" gorm:"column:id" example:"food-dining"` // Identifier of the category
	Name       string       `json:"name" example:"Food & Dining"`     // Display name
	Icon       string       `json:"icon" example:"🍽️"`               // Icon glyph
	Color      string       `json:"color" example:"hsl(142, 76%, 36%)"` // Display color
	Kind       CategoryKind `json:"type" example:"expense"`           // income or expense
}

// ExpenseCategories is the fixed set of expense categories.
var ExpenseCategories = []TransactionCategory{
	{CategoryID: "food-dining", Name: "Food & Dining", Icon: "🍽️", Color: "hsl(142, 76%, 36%)", Kind: KindExpense},
	{CategoryID: "transportation", Name: "Transportation", Icon: "🚗", Color: "hsl(221, 83%, 53%)", Kind: KindExpense},
	{CategoryID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "hsl(262, 83%, 58%)", Kind: KindExpense},
	{CategoryID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "hsl(38, 92%, 50%)", Kind: KindExpense},
	{CategoryID: "bills-utilities", Name: "Bills & Utilities", Icon: "⚡", Color: "hsl(0, 84%, 60%)", Kind: KindExpense},
	{CategoryID: "healthcare", Name: "Healthcare", Icon: "🏥", Color: "hsl(195, 100%, 50%)", Kind: KindExpense},
	{CategoryID: "education", Name: "Education", Icon: "📚", Color: "hsl(45, 100%, 50%)", Kind: KindExpense},
	{CategoryID: "travel", Name: "Travel", Icon: "✈️", Color: "hsl(300, 100%, 50%)", Kind: KindExpense},
	{CategoryID: "fitness", Name: "Fitness & Sports", Icon: "💪", Color: "hsl(120, 100%, 40%)", Kind: KindExpense},
	{CategoryID: "personal-care", Name: "Personal Care", Icon: "💄", Color: "hsl(330, 100%, 50%)", Kind: KindExpense},
	{CategoryID: "gifts", Name: "Gifts & Donations", Icon: "🎁", Color: "hsl(15, 100%, 50%)", Kind: KindExpense},
	{CategoryID: "other-expense", Name: "Other", Icon: "📦", Color: "hsl(0, 0%, 50%)", Kind: KindExpense},
}

// IncomeCategories is the fixed set of income categories.
var IncomeCategories = []TransactionCategory{
	{CategoryID: "salary", Name: "Salary", Icon: "💼", Color: "hsl(142, 76%, 36%)", Kind: KindIncome},
	{CategoryID: "freelance", Name: "Freelance", Icon: "💻", Color: "hsl(221, 83%, 53%)", Kind: KindIncome},
	{CategoryID: "business", Name: "Business", Icon: "🏢", Color: "hsl(262, 83%, 58%)", Kind: KindIncome},
	{CategoryID: "investments", Name: "Investments", Icon: "📈", Color: "hsl(38, 92%, 50%)", Kind: KindIncome},
	{CategoryID: "rental", Name: "Rental Income", Icon: "🏠", Color: "hsl(195, 100%, 50%)", Kind: KindIncome},
	{CategoryID: "bonus", Name: "Bonus", Icon: "🎉", Color: "hsl(45, 100%, 50%)", Kind: KindIncome},
	{CategoryID: "gift-income", Name: "Gifts", Icon: "🎁", Color: "hsl(300, 100%, 50%)", Kind: KindIncome},
	{CategoryID: "other-income", Name: "Other", Icon: "💰", Color: "hsl(120, 100%, 40%)", Kind: KindIncome},
}

// AllCategories returns the full registry, expenses first.
func AllCategories() []TransactionCategory {
	all := make([]TransactionCategory, 0, len(ExpenseCategories)+len(IncomeCategories))
	all = append(all, ExpenseCategories...)
	all = append(all, IncomeCategories...)
	return all
}

// CategoryByID looks a category up by its identifier.
func CategoryByID(id string) (TransactionCategory, error) {
	for _, category := range AllCategories() {
		if category.CategoryID == id {
			return category, nil
		}
	}

	return TransactionCategory{}, ErrCategoryInvalid
}

// CategoriesByKind returns all categories of the requested kind.
func CategoriesByKind(kind CategoryKind) []TransactionCategory {
	if kind == KindIncome {
		return IncomeCategories
	}

	return ExpenseCategories
}
