package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financetrackr/backend/internal/httputil"
	"github.com/financetrackr/backend/internal/models"
)

// CategoryListResponse is the response body for the category registry.
type CategoryListResponse struct {
	Data []models.TransactionCategory `json:"data"`
}

// RegisterCategoryRoutes registers the routes for the category registry
// with the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetCategories)
}

// GetCategories returns the fixed category registry, expenses first. The
// type query parameter limits the result to one kind.
func (co Controller) GetCategories(c *gin.Context) {
	raw := c.Query("type")
	if raw == "" {
		c.JSON(http.StatusOK, CategoryListResponse{Data: models.AllCategories()})
		return
	}

	kind := models.CategoryKind(raw)
	if !kind.Valid() {
		httpError(c, models.ErrKindInvalid)
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: models.CategoriesByKind(kind)})
}
