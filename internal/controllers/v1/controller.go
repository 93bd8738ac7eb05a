// Package v1 implements the v1 REST API on top of the entity trackers.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/financetrackr/backend/internal/analytics"
	"github.com/financetrackr/backend/internal/tracker"
	"github.com/financetrackr/backend/internal/trial"
)

// Context keys set by the authentication and trial middleware.
const (
	// ContextUserID holds the id of the requesting user. During an
	// anonymous trial this is the device id.
	ContextUserID = "userID"

	// ContextClientID holds the trial device id from the device cookie.
	ContextClientID = "clientID"

	// ContextAuthenticated is true when the request carried a valid token.
	ContextAuthenticated = "authenticated"
)

// Controller holds the dependencies of all v1 handlers.
type Controller struct {
	Hub       *tracker.Hub
	Analytics *analytics.Service
	Gate      *trial.Gate
}

func timeNow() time.Time {
	return time.Now().In(time.UTC)
}

// userID returns the id of the requesting user. It is empty for anonymous
// requests without a trial device id.
func userID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// set resolves the tracker set of the requesting user, answering the
// request with an error when loading fails.
func (co Controller) set(c *gin.Context) (*tracker.Set, bool) {
	set, err := co.Hub.ForUser(c.Request.Context(), userID(c))
	if err != nil {
		httpError(c, err)
		return nil, false
	}

	return set, true
}
