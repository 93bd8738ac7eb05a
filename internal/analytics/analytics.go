// Package analytics computes the dashboard statistics and chart series for
// one user from the storage adapter.
//
// Results can be cached in Redis with a short TTL; writes through the REST
// surface invalidate the cached entries.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/financetrackr/backend/internal/format"
	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

// DefaultTrendMonths is the time-series range used when the caller does not
// request one.
const DefaultTrendMonths = 6

// MaxTrendMonths caps the time-series range. One point is allocated per
// month, so the range bounds the response size.
const MaxTrendMonths = 120

const cacheTTL = 5 * time.Minute

// Stats summarizes a user's financial position.
type Stats struct {
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	BudgetUtilization float64         `json:"budgetUtilization"`
	GoalsProgress     float64         `json:"goalsProgress"`
	MonthlyComparison Comparison      `json:"monthlyComparison"`
}

// Comparison holds the income and expenses of the current calendar month.
type Comparison struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// ChartPoint is one slice of the per-category expense breakdown.
type ChartPoint struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color,omitempty"`
	Label string          `json:"label,omitempty"`
}

// TimeSeriesPoint is one month of the income/expense trend.
type TimeSeriesPoint struct {
	Date     string          `json:"date"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// Service computes analytics from a storage adapter.
type Service struct {
	store storage.Storage
	cache *redis.Client
	now   func() time.Time
}

// New returns a Service. cache may be nil, in which case every call
// computes from storage.
func New(store storage.Storage, cache *redis.Client) *Service {
	return &Service{
		store: store,
		cache: cache,
		now:   func() time.Time { return time.Now().In(time.UTC) },
	}
}

// Stats returns the dashboard summary for a user.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	var stats Stats
	if s.cached(ctx, statsKey(userID), &stats) {
		return stats, nil
	}

	transactions, err := s.store.ListTransactions(ctx, userID, storage.TransactionFilter{Limit: -1})
	if err != nil {
		return Stats{}, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for _, t := range transactions {
		switch t.Kind {
		case models.KindIncome:
			stats.TotalIncome = stats.TotalIncome.Add(t.Amount)
			if !t.Date.Before(monthStart) {
				stats.MonthlyComparison.Income = stats.MonthlyComparison.Income.Add(t.Amount)
			}
		case models.KindExpense:
			stats.TotalExpenses = stats.TotalExpenses.Add(t.Amount)
			if !t.Date.Before(monthStart) {
				stats.MonthlyComparison.Expenses = stats.MonthlyComparison.Expenses.Add(t.Amount)
			}
		}
	}
	stats.NetIncome = stats.TotalIncome.Sub(stats.TotalExpenses)

	budgets, err := s.store.ListBudgets(ctx, userID, storage.BudgetFilter{})
	if err != nil {
		return Stats{}, err
	}

	var budgeted, spent decimal.Decimal
	for _, b := range budgets {
		budgeted = budgeted.Add(b.Amount)
		spent = spent.Add(b.Spent)
	}
	if budgeted.IsPositive() {
		utilization, _ := spent.Div(budgeted).Mul(decimal.NewFromInt(100)).Float64()
		stats.BudgetUtilization = utilization
	}

	goals, err := s.store.ListGoals(ctx, userID, storage.GoalFilter{})
	if err != nil {
		return Stats{}, err
	}

	var target, current decimal.Decimal
	for _, g := range goals {
		target = target.Add(g.TargetAmount)
		current = current.Add(g.CurrentAmount)
	}
	if target.IsPositive() {
		progress, _ := current.Div(target).Mul(decimal.NewFromInt(100)).Float64()
		stats.GoalsProgress = progress
	}

	s.put(ctx, statsKey(userID), stats)
	return stats, nil
}

// ExpenseBreakdown returns the per-category expense sums, largest first.
func (s *Service) ExpenseBreakdown(ctx context.Context, userID string) ([]ChartPoint, error) {
	var points []ChartPoint
	if s.cached(ctx, expensesKey(userID), &points) {
		return points, nil
	}

	transactions, err := s.store.ListTransactions(ctx, userID, storage.TransactionFilter{Limit: -1})
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Kind != models.KindExpense {
			continue
		}
		sums[t.Category.CategoryID] = sums[t.Category.CategoryID].Add(t.Amount)
	}

	points = make([]ChartPoint, 0, len(sums))
	for _, category := range models.ExpenseCategories {
		value, ok := sums[category.CategoryID]
		if !ok {
			continue
		}
		points = append(points, ChartPoint{
			Name:  category.Name,
			Value: value,
			Color: category.Color,
			Label: format.Currency(value, format.DefaultCurrency),
		})
	}

	slices.SortStableFunc(points, func(a, b ChartPoint) int {
		return b.Value.Cmp(a.Value)
	})

	s.put(ctx, expensesKey(userID), points)
	return points, nil
}

// Trends returns the monthly income/expense/net series for the last months
// months, oldest first. The range is clamped to [1, MaxTrendMonths].
func (s *Service) Trends(ctx context.Context, userID string, months int) ([]TimeSeriesPoint, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	if months > MaxTrendMonths {
		months = MaxTrendMonths
	}

	var points []TimeSeriesPoint
	if s.cached(ctx, trendsKey(userID, months), &points) {
		return points, nil
	}

	transactions, err := s.store.ListTransactions(ctx, userID, storage.TransactionFilter{Limit: -1})
	if err != nil {
		return nil, err
	}

	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	points = make([]TimeSeriesPoint, months)
	for i := range points {
		month := first.AddDate(0, i, 0)
		points[i] = TimeSeriesPoint{
			Date:  month.Format("2006-01"),
			Label: month.Format("Jan"),
		}
	}

	for _, t := range transactions {
		if t.Date.Before(first) {
			continue
		}

		idx := (t.Date.Year()-first.Year())*12 + int(t.Date.Month()) - int(first.Month())
		if idx < 0 || idx >= months {
			continue
		}

		switch t.Kind {
		case models.KindIncome:
			points[idx].Income = points[idx].Income.Add(t.Amount)
		case models.KindExpense:
			points[idx].Expenses = points[idx].Expenses.Add(t.Amount)
		}
	}

	for i := range points {
		points[i].Net = points[i].Income.Sub(points[i].Expenses)
	}

	s.put(ctx, trendsKey(userID, months), points)
	return points, nil
}

// Invalidate drops the cached analytics of one user. It is called after
// every write. Trend series for non-default ranges age out via the TTL.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}

	err := s.cache.Del(ctx, statsKey(userID), expensesKey(userID), trendsKey(userID, DefaultTrendMonths)).Err()
	if err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("analytics cache invalidation failed")
	}
}

func (s *Service) cached(ctx context.Context, key string, target any) bool {
	if s.cache == nil {
		return false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, target) == nil
}

func (s *Service) put(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("analytics cache write failed")
	}
}

func statsKey(userID string) string {
	return fmt.Sprintf("analytics:stats:%s", userID)
}

func expensesKey(userID string) string {
	return fmt.Sprintf("analytics:expenses:%s", userID)
}

func trendsKey(userID string, months int) string {
	return fmt.Sprintf("analytics:trends:%s:%d", userID, months)
}
