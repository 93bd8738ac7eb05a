package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financetrackr/backend/internal/httputil"
	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

// BudgetResponse is the response body for a single budget.
type BudgetResponse struct {
	Data models.Budget `json:"data"`
}

// BudgetListResponse is the response body for a list of budgets.
type BudgetListResponse struct {
	Data []models.Budget `json:"data"`
}

// RegisterBudgetRoutes registers the routes for budgets with the
// RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// CreateBudget creates a new budget for the requesting user. The spent
// amount always starts at zero.
func (co Controller) CreateBudget(c *gin.Context) {
	var data models.Budget
	if err := httputil.BindData(c, &data); err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	id, err := set.Budgets.Add(c.Request.Context(), data)
	if err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	budget, err := set.Budgets.Get(id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: budget})
}

// GetBudgets returns the budgets of the requesting user, newest first.
func (co Controller) GetBudgets(c *gin.Context) {
	set, ok := co.set(c)
	if !ok {
		return
	}

	period := models.BudgetPeriod(c.Query("period"))
	if period != "" && !period.Valid() {
		httpError(c, models.ErrBudgetPeriodInvalid)
		return
	}

	items := set.Budgets.Items()
	filtered := make([]models.Budget, 0, len(items))
	for _, b := range items {
		if period != "" && b.Period != period {
			continue
		}
		filtered = append(filtered, b)
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: filtered})
}

// GetBudget returns a single budget by its id.
func (co Controller) GetBudget(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	budget, err := set.Budgets.Get(id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: budget})
}

// UpdateBudget applies a partial update to a budget.
func (co Controller) UpdateBudget(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	var patch storage.BudgetPatch
	if err := httputil.BindData(c, &patch); err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	if err := set.Budgets.Update(c.Request.Context(), id, patch); err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	budget, err := set.Budgets.Get(id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: budget})
}

// DeleteBudget deletes a budget. Deleting an absent id is not an error.
func (co Controller) DeleteBudget(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	if err := set.Budgets.Delete(c.Request.Context(), id); err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	c.Status(http.StatusNoContent)
}
