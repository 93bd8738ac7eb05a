// Package httputil contains helpers for request parsing that are shared by
// all API controllers.
package httputil

import (
	"errors"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrRequestBodyEmpty needs to be returned when the request body is empty
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")

	// ErrInvalidBody is returned when the request body cannot be parsed
	ErrInvalidBody = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")

	// ErrInvalidUUID is returned when a path parameter is not a valid UUID
	ErrInvalidUUID = errors.New("the specified resource ID is not a valid UUID")

	// ErrInvalidQuery is returned when a query parameter cannot be parsed
	ErrInvalidQuery = errors.New("a query string parameter contains invalid or un-parseable data. Please check and try again")
)

// BindData binds the JSON request body to the struct passed in data.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(io.EOF, err) {
			return ErrRequestBodyEmpty
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// UUIDFromParam parses the named path parameter as a UUID.
func UUIDFromParam(c *gin.Context, param string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}
