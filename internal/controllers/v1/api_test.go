package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financetrackr/backend/internal/analytics"
	"github.com/financetrackr/backend/internal/config"
	v1 "github.com/financetrackr/backend/internal/controllers/v1"
	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/router"
	"github.com/financetrackr/backend/internal/storage/localfile"
	"github.com/financetrackr/backend/internal/test"
	"github.com/financetrackr/backend/internal/tracker"
	"github.com/financetrackr/backend/internal/trial"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAPI(t *testing.T) http.Handler {
	store, err := localfile.New(t.TempDir())
	require.Nil(t, err)

	counts, err := trial.NewFileStore(t.TempDir())
	require.Nil(t, err)

	co := v1.Controller{
		Hub:       tracker.NewHub(store),
		Analytics: analytics.New(store, nil),
		Gate:      trial.NewGate(counts),
	}

	engine, err := router.Config(config.Config{})
	require.Nil(t, err)
	router.AttachRoutes(co, engine.Group("/"), testSecret)

	return engine
}

// token returns a signed bearer token for the given user.
func token(t *testing.T, userID string) string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.Nil(t, err)

	return "Bearer " + signed
}

func authHeader(t *testing.T, userID string) map[string]string {
	return map[string]string{"Authorization": token(t, userID)}
}

func cookieHeader(clientID string) map[string]string {
	return map[string]string{"Cookie": router.DeviceCookie + "=" + clientID}
}

func TestRootEndpoints(t *testing.T) {
	api := newAPI(t)

	r := test.Request(t, api, http.MethodGet, "/", "")
	test.AssertHTTPStatus(t, http.StatusOK, &r)

	r = test.Request(t, api, http.MethodGet, "/version", "")
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	assert.Contains(t, r.Body.String(), "version")

	r = test.Request(t, api, http.MethodGet, "/healthz", "")
	test.AssertHTTPStatus(t, http.StatusNoContent, &r)

	r = test.Request(t, api, http.MethodGet, "/v1", "")
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	assert.Contains(t, r.Body.String(), "/v1/transactions")
}

func TestMethodNotAllowed(t *testing.T) {
	api := newAPI(t)

	r := test.Request(t, api, http.MethodPut, "/v1/budgets", "", authHeader(t, "alice"))
	test.AssertHTTPStatus(t, http.StatusMethodNotAllowed, &r)
}

func TestOptionsHeaders(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		path  string
		allow string
	}{
		{"/v1/transactions", "GET, POST"},
		{"/v1/budgets", "GET, POST"},
		{"/v1/goals", "GET, POST"},
		{"/v1/categories", "GET"},
		{"/v1/trial", "GET, POST"},
		{"/v1/analytics/stats", "GET"},
	}

	for _, tt := range tests {
		r := test.Request(t, api, http.MethodOptions, tt.path, "", authHeader(t, "alice"))
		test.AssertHTTPStatus(t, http.StatusNoContent, &r)
		assert.Equal(t, tt.allow, r.Header().Get("allow"), tt.path)
	}
}

func TestGetCategories(t *testing.T) {
	api := newAPI(t)

	var response v1.CategoryListResponse

	r := test.Request(t, api, http.MethodGet, "/v1/categories", "")
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &response)
	assert.Len(t, response.Data, 20)

	r = test.Request(t, api, http.MethodGet, "/v1/categories?type=income", "")
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &response)
	assert.Len(t, response.Data, 8)

	r = test.Request(t, api, http.MethodGet, "/v1/categories?type=savings", "")
	test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
}

func TestTransactionCRUD(t *testing.T) {
	api := newAPI(t)
	auth := authHeader(t, "alice")

	body := `{"amount": "47.11", "description": "Groceries", "type": "expense", "category": {"id": "food-dining"}, "date": "2024-03-07T00:00:00Z"}`

	var created v1.TransactionResponse
	r := test.Request(t, api, http.MethodPost, "/v1/transactions", body, auth)
	test.AssertHTTPStatus(t, http.StatusCreated, &r)
	test.DecodeResponse(t, &r, &created)
	assert.Equal(t, "Groceries", created.Data.Description)
	assert.Equal(t, "Food & Dining", created.Data.Category.Name)

	// The list contains the new record
	var list v1.TransactionListResponse
	r = test.Request(t, api, http.MethodGet, "/v1/transactions", "", auth)
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &list)
	require.Len(t, list.Data, 1)

	// Partial update
	var updated v1.TransactionResponse
	r = test.Request(t, api, http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), `{"description": "Weekly groceries"}`, auth)
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &updated)
	assert.Equal(t, "Weekly groceries", updated.Data.Description)
	assert.True(t, updated.Data.Amount.Equal(created.Data.Amount))

	// Get by id
	r = test.Request(t, api, http.MethodGet, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "", auth)
	test.AssertHTTPStatus(t, http.StatusOK, &r)

	// Delete, then the record is gone
	r = test.Request(t, api, http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "", auth)
	test.AssertHTTPStatus(t, http.StatusNoContent, &r)

	r = test.Request(t, api, http.MethodGet, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "", auth)
	test.AssertHTTPStatus(t, http.StatusNotFound, &r)
}

func TestTransactionErrors(t *testing.T) {
	api := newAPI(t)
	auth := authHeader(t, "alice")

	// Invalid UUID in the path
	r := test.Request(t, api, http.MethodGet, "/v1/transactions/not-a-uuid", "", auth)
	test.AssertHTTPStatus(t, http.StatusBadRequest, &r)

	// Empty body
	r = test.Request(t, api, http.MethodPost, "/v1/transactions", "", auth)
	test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
	assert.Equal(t, "the request body must not be empty", test.DecodeError(t, r.Body.Bytes()))

	// Unparseable body
	r = test.Request(t, api, http.MethodPost, "/v1/transactions", `{"amount": "definitely not a number"`, auth)
	test.AssertHTTPStatus(t, http.StatusBadRequest, &r)

	// Validation failure
	r = test.Request(t, api, http.MethodPost, "/v1/transactions", `{"amount": "10", "type": "income", "category": {"id": "food-dining"}}`, auth)
	test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
	assert.Equal(t, models.ErrKindMismatch.Error(), test.DecodeError(t, r.Body.Bytes()))

	// Unknown id, with the resource named in the message
	r = test.Request(t, api, http.MethodGet, "/v1/transactions/5b8847be-d7b9-4d3d-9d93-1b2bd06b71a5", "", auth)
	test.AssertHTTPStatus(t, http.StatusNotFound, &r)
	assert.Equal(t, "there is no transaction matching your query", test.DecodeError(t, r.Body.Bytes()))
}

func TestUserIsolationOverHTTP(t *testing.T) {
	api := newAPI(t)

	body := `{"amount": "10", "type": "expense", "category": {"id": "food-dining"}}`
	r := test.Request(t, api, http.MethodPost, "/v1/transactions", body, authHeader(t, "u1"))
	test.AssertHTTPStatus(t, http.StatusCreated, &r)

	var list v1.TransactionListResponse
	r = test.Request(t, api, http.MethodGet, "/v1/transactions", "", authHeader(t, "u2"))
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &list)
	assert.Empty(t, list.Data)
}

func TestGoalBalance(t *testing.T) {
	api := newAPI(t)
	auth := authHeader(t, "alice")

	body := fmt.Sprintf(`{"name": "Emergency Fund", "targetAmount": "10000", "targetDate": %q}`, time.Now().AddDate(1, 0, 0).Format(time.RFC3339))

	var created v1.GoalResponse
	r := test.Request(t, api, http.MethodPost, "/v1/goals", body, auth)
	test.AssertHTTPStatus(t, http.StatusCreated, &r)
	test.DecodeResponse(t, &r, &created)
	assert.True(t, created.Data.CurrentAmount.IsZero())

	var balance v1.BalanceResponse
	r = test.Request(t, api, http.MethodPost, fmt.Sprintf("/v1/goals/%s/balance", created.Data.ID), `{"amount": "100"}`, auth)
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &balance)
	assert.Equal(t, "100", balance.Data.CurrentAmount.String())

	r = test.Request(t, api, http.MethodPost, fmt.Sprintf("/v1/goals/%s/balance", created.Data.ID), `{"amount": "50"}`, auth)
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &balance)
	assert.Equal(t, "150", balance.Data.CurrentAmount.String())

	// Non-positive contributions are rejected
	r = test.Request(t, api, http.MethodPost, fmt.Sprintf("/v1/goals/%s/balance", created.Data.ID), `{"amount": "0"}`, auth)
	test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
}

func TestBudgetCRUDOverHTTP(t *testing.T) {
	api := newAPI(t)
	auth := authHeader(t, "alice")

	body := `{"name": "Groceries", "amount": "500", "period": "monthly", "category": {"id": "food-dining"}, "startDate": "2024-01-01T00:00:00Z", "endDate": "2024-01-31T00:00:00Z"}`

	var created v1.BudgetResponse
	r := test.Request(t, api, http.MethodPost, "/v1/budgets", body, auth)
	test.AssertHTTPStatus(t, http.StatusCreated, &r)
	test.DecodeResponse(t, &r, &created)
	assert.True(t, created.Data.Spent.IsZero())

	// Date range survives the round trip
	assert.True(t, created.Data.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, created.Data.EndDate.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))

	// Invalid period is rejected
	r = test.Request(t, api, http.MethodGet, "/v1/budgets?period=daily", "", auth)
	test.AssertHTTPStatus(t, http.StatusBadRequest, &r)

	var list v1.BudgetListResponse
	r = test.Request(t, api, http.MethodGet, "/v1/budgets?period=monthly", "", auth)
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &list)
	assert.Len(t, list.Data, 1)
}

func TestAnalyticsEndpoints(t *testing.T) {
	api := newAPI(t)
	auth := authHeader(t, "alice")

	body := `{"amount": "100", "type": "expense", "category": {"id": "food-dining"}}`
	r := test.Request(t, api, http.MethodPost, "/v1/transactions", body, auth)
	test.AssertHTTPStatus(t, http.StatusCreated, &r)

	var stats v1.StatsResponse
	r = test.Request(t, api, http.MethodGet, "/v1/analytics/stats", "", auth)
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &stats)
	assert.Equal(t, "100", stats.Data.TotalExpenses.String())

	var breakdown v1.ExpenseBreakdownResponse
	r = test.Request(t, api, http.MethodGet, "/v1/analytics/expenses", "", auth)
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &breakdown)
	require.Len(t, breakdown.Data, 1)
	assert.Equal(t, "Food & Dining", breakdown.Data[0].Name)

	var trends v1.TrendsResponse
	r = test.Request(t, api, http.MethodGet, "/v1/analytics/trends?months=3", "", auth)
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	test.DecodeResponse(t, &r, &trends)
	assert.Len(t, trends.Data, 3)

	r = test.Request(t, api, http.MethodGet, "/v1/analytics/trends?months=nope", "", auth)
	test.AssertHTTPStatus(t, http.StatusBadRequest, &r)

	// A range beyond the cap is rejected, not allocated
	r = test.Request(t, api, http.MethodGet, "/v1/analytics/trends?months=50000000", "", auth)
	test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
}
