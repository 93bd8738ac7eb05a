package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/financetrackr/backend/internal/httputil"
	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

// TransactionResponse is the response body for a single transaction.
type TransactionResponse struct {
	Data models.Transaction `json:"data"`
}

// TransactionListResponse is the response body for a list of transactions.
type TransactionListResponse struct {
	Data []models.Transaction `json:"data"`
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// CreateTransaction creates a new transaction for the requesting user.
func (co Controller) CreateTransaction(c *gin.Context) {
	var data models.Transaction
	if err := httputil.BindData(c, &data); err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	id, err := set.Transactions.Add(c.Request.Context(), data)
	if err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	transaction, err := set.Transactions.Get(id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: transaction})
}

// GetTransactions returns the transactions of the requesting user,
// newest first. The category, from, until and limit query parameters
// narrow down the result.
func (co Controller) GetTransactions(c *gin.Context) {
	set, ok := co.set(c)
	if !ok {
		return
	}

	filter, err := transactionFilter(c)
	if err != nil {
		httpError(c, err)
		return
	}

	items := set.Transactions.Items()
	filtered := make([]models.Transaction, 0, len(items))
	for _, t := range items {
		if filter.CategoryID != "" && t.Category.CategoryID != filter.CategoryID {
			continue
		}
		if filter.From != nil && t.Date.Before(*filter.From) {
			continue
		}
		if filter.Until != nil && t.Date.After(*filter.Until) {
			continue
		}

		filtered = append(filtered, t)
		if filter.Limit > 0 && len(filtered) == filter.Limit {
			break
		}
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: filtered})
}

// GetTransaction returns a single transaction by its id.
func (co Controller) GetTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	transaction, err := set.Transactions.Get(id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}

// UpdateTransaction applies a partial update to a transaction.
func (co Controller) UpdateTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	var patch storage.TransactionPatch
	if err := httputil.BindData(c, &patch); err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	if err := set.Transactions.Update(c.Request.Context(), id, patch); err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	transaction, err := set.Transactions.Get(id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}

// DeleteTransaction deletes a transaction. Deleting an absent id is not
// an error.
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	if err := set.Transactions.Delete(c.Request.Context(), id); err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	c.Status(http.StatusNoContent)
}

func transactionFilter(c *gin.Context) (storage.TransactionFilter, error) {
	filter := storage.TransactionFilter{
		CategoryID: c.Query("category"),
		Limit:      storage.DefaultListLimit,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return storage.TransactionFilter{}, httputil.ErrInvalidQuery
		}
		filter.Limit = limit
	}

	for query, target := range map[string]**time.Time{"from": &filter.From, "until": &filter.Until} {
		raw := c.Query(query)
		if raw == "" {
			continue
		}

		date, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			date, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			return storage.TransactionFilter{}, httputil.ErrInvalidQuery
		}

		date = date.In(time.UTC)
		*target = &date
	}

	return filter, nil
}
