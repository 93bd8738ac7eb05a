package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financetrackr/backend/internal/httputil"
	"github.com/financetrackr/backend/internal/models"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func httpError(c *gin.Context, err error) {
	c.JSON(status(err), ErrorResponse{Error: err.Error()})
}

// status maps an error to the HTTP status code of the response.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, httputil.ErrInvalidUUID),
		errors.Is(err, httputil.ErrInvalidBody),
		errors.Is(err, httputil.ErrInvalidQuery),
		errors.Is(err, httputil.ErrRequestBodyEmpty):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
