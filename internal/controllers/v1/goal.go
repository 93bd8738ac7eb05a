package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/financetrackr/backend/internal/httputil"
	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
)

// GoalResponse is the response body for a single goal.
type GoalResponse struct {
	Data models.Goal `json:"data"`
}

// GoalListResponse is the response body for a list of goals.
type GoalListResponse struct {
	Data []models.Goal `json:"data"`
}

// BalanceRequest is the request body for a goal contribution.
type BalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// BalanceResponse is the response body for a goal contribution. It carries
// the resulting amount so that clients do not have to refetch the goal.
type BalanceResponse struct {
	Data struct {
		CurrentAmount decimal.Decimal `json:"currentAmount"`
	} `json:"data"`
}

// RegisterGoalRoutes registers the routes for goals with the RouterGroup
// that is passed.
func (co Controller) RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetGoals)
		r.POST("", co.CreateGoal)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetGoal)
		r.PATCH("/:id", co.UpdateGoal)
		r.DELETE("/:id", co.DeleteGoal)
	}

	{
		r.OPTIONS("/:id/balance", httputil.OptionsPost)
		r.POST("/:id/balance", co.AddToGoal)
	}
}

// CreateGoal creates a new goal for the requesting user. The current
// amount always starts at zero.
func (co Controller) CreateGoal(c *gin.Context) {
	var data models.Goal
	if err := httputil.BindData(c, &data); err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	id, err := set.Goals.Add(c.Request.Context(), data)
	if err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	goal, err := set.Goals.Get(id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusCreated, GoalResponse{Data: goal})
}

// GetGoals returns the goals of the requesting user, newest first. With
// active=true, goals whose target date has passed are omitted.
func (co Controller) GetGoals(c *gin.Context) {
	set, ok := co.set(c)
	if !ok {
		return
	}

	activeOnly := c.Query("active") == "true"

	items := set.Goals.Items()
	filtered := make([]models.Goal, 0, len(items))
	for _, g := range items {
		if activeOnly && !g.TargetDate.After(timeNow()) {
			continue
		}
		filtered = append(filtered, g)
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: filtered})
}

// GetGoal returns a single goal by its id.
func (co Controller) GetGoal(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	goal, err := set.Goals.Get(id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: goal})
}

// UpdateGoal applies a partial update to a goal.
func (co Controller) UpdateGoal(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	var patch storage.GoalPatch
	if err := httputil.BindData(c, &patch); err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	if err := set.Goals.Update(c.Request.Context(), id, patch); err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	goal, err := set.Goals.Get(id)
	if err != nil {
		httpError(c, err)
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: goal})
}

// DeleteGoal deletes a goal. Deleting an absent id is not an error.
func (co Controller) DeleteGoal(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	if err := set.Goals.Delete(c.Request.Context(), id); err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	c.Status(http.StatusNoContent)
}

// AddToGoal adds a contribution to the saved amount of a goal.
func (co Controller) AddToGoal(c *gin.Context) {
	id, err := httputil.UUIDFromParam(c, "id")
	if err != nil {
		httpError(c, err)
		return
	}

	var data BalanceRequest
	if err := httputil.BindData(c, &data); err != nil {
		httpError(c, err)
		return
	}

	set, ok := co.set(c)
	if !ok {
		return
	}

	newAmount, err := set.Goals.AddToGoal(c.Request.Context(), id, data.Amount)
	if err != nil {
		httpError(c, err)
		return
	}

	co.Analytics.Invalidate(c.Request.Context(), userID(c))

	var response BalanceResponse
	response.Data.CurrentAmount = newAmount
	c.JSON(http.StatusOK, response)
}
