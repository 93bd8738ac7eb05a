package format_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/financetrackr/backend/internal/format"
)

func TestCurrency(t *testing.T) {
	formatted := format.Currency(decimal.NewFromInt(100), "INR")
	assert.Contains(t, formatted, "100")
	assert.NotEqual(t, "100", formatted, "symbol missing: %q", formatted)

	// Indian digit grouping: 1,00,000
	formatted = format.Currency(decimal.NewFromInt(100000), "INR")
	assert.Contains(t, formatted, "1,00,000")

	// Unknown codes fall back to the default currency
	fallback := format.Currency(decimal.NewFromInt(100), "not-a-code")
	assert.Equal(t, format.Currency(decimal.NewFromInt(100), format.DefaultCurrency), fallback)
}

func TestCompact(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{25000000, "₹2.5Cr"},
		{10000000, "₹1.0Cr"},
		{350000, "₹3.5L"},
		{100000, "₹1.0L"},
		{75500, "₹75.5K"},
		{1000, "₹1.0K"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, format.Compact(decimal.NewFromInt(tt.amount)))
	}

	// Below a thousand the full localized amount is used
	assert.Contains(t, format.Compact(decimal.NewFromInt(999)), "999")
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, "42.5%", format.Percentage(42.5, 1))
	assert.Equal(t, "43%", format.Percentage(42.5001, 0))
	assert.Equal(t, "0.00%", format.Percentage(0, 2))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1,00,000", format.Number(100000, 0))
	assert.Contains(t, format.Number(1234.5, 1), "1,234.5")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", format.Truncate("short", 10))
	assert.Equal(t, "exact", format.Truncate("exact", 5))
	assert.Equal(t, "trunc...", format.Truncate("truncated", 5))

	// Multi-byte runes are not split
	truncated := format.Truncate("日本語のテキスト", 3)
	assert.Equal(t, "日本語...", truncated)
	assert.True(t, strings.HasSuffix(truncated, "..."))
}
