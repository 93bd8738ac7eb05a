package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/financetrackr/backend/internal/analytics"
	"github.com/financetrackr/backend/internal/httputil"
)

// StatsResponse is the response body for the dashboard statistics.
type StatsResponse struct {
	Data analytics.Stats `json:"data"`
}

// ExpenseBreakdownResponse is the response body for the expense chart.
type ExpenseBreakdownResponse struct {
	Data []analytics.ChartPoint `json:"data"`
}

// TrendsResponse is the response body for the monthly trend series.
type TrendsResponse struct {
	Data []analytics.TimeSeriesPoint `json:"data"`
}

// RegisterAnalyticsRoutes registers the routes for analytics with the
// RouterGroup that is passed.
func (co Controller) RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/stats", httputil.OptionsGet)
	r.GET("/stats", co.GetStats)

	r.OPTIONS("/expenses", httputil.OptionsGet)
	r.GET("/expenses", co.GetExpenseBreakdown)

	r.OPTIONS("/trends", httputil.OptionsGet)
	r.GET("/trends", co.GetTrends)
}

// GetStats returns the dashboard summary of the requesting user.
func (co Controller) GetStats(c *gin.Context) {
	stats, err := co.Analytics.Stats(c.Request.Context(), userID(c))
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{Data: stats})
}

// GetExpenseBreakdown returns the per-category expense sums of the
// requesting user, largest first.
func (co Controller) GetExpenseBreakdown(c *gin.Context) {
	points, err := co.Analytics.ExpenseBreakdown(c.Request.Context(), userID(c))
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseBreakdownResponse{Data: points})
}

// GetTrends returns the monthly income and expense series of the
// requesting user. The months query parameter sets the range.
func (co Controller) GetTrends(c *gin.Context) {
	months := analytics.DefaultTrendMonths
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > analytics.MaxTrendMonths {
			httpError(c, httputil.ErrInvalidQuery)
			return
		}
		months = parsed
	}

	points, err := co.Analytics.Trends(c.Request.Context(), userID(c), months)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, TrendsResponse{Data: points})
}
