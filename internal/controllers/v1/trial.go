package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/financetrackr/backend/internal/httputil"
	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/trial"
)

// TrialResponse is the response body for the trial status of one feature.
type TrialResponse struct {
	Data trial.Decision `json:"data"`
}

// TrialStatusResponse is the response body for the trial status of all
// features.
type TrialStatusResponse struct {
	Data map[trial.Feature]trial.Decision `json:"data"`
}

// UseTrialRequest is the request body for consuming a trial visit.
type UseTrialRequest struct {
	Feature trial.Feature `json:"feature"`
}

// RegisterTrialRoutes registers the routes for the trial status with the
// RouterGroup that is passed.
func (co Controller) RegisterTrialRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetTrialStatus)
	r.POST("", co.UseTrial)
}

// UseTrial consumes one free visit for a feature. Clients call this once
// per feature visit; authenticated callers pass without counting.
func (co Controller) UseTrial(c *gin.Context) {
	var data UseTrialRequest
	if err := httputil.BindData(c, &data); err != nil {
		httpError(c, err)
		return
	}

	if !data.Feature.Valid() {
		httpError(c, trial.ErrFeatureInvalid)
		return
	}

	decision, err := co.Gate.CheckAccess(c.GetString(ContextClientID), data.Feature, c.GetBool(ContextAuthenticated))
	if err != nil {
		log.Error().Err(err).Msg("trial")
		httpError(c, models.ErrGeneral)
		return
	}

	if !decision.Allowed {
		c.JSON(http.StatusUnauthorized, TrialResponse{Data: decision})
		return
	}

	c.JSON(http.StatusOK, TrialResponse{Data: decision})
}

// GetTrialStatus reports the remaining free uses without consuming one.
// Without a feature query parameter, all features are reported.
func (co Controller) GetTrialStatus(c *gin.Context) {
	clientID := c.GetString(ContextClientID)
	authenticated := c.GetBool(ContextAuthenticated)

	if raw := c.Query("feature"); raw != "" {
		feature := trial.Feature(raw)
		if !feature.Valid() {
			httpError(c, trial.ErrFeatureInvalid)
			return
		}

		decision, err := co.Gate.Peek(clientID, feature, authenticated)
		if err != nil {
			log.Error().Err(err).Msg("trial")
			httpError(c, models.ErrGeneral)
			return
		}

		c.JSON(http.StatusOK, TrialResponse{Data: decision})
		return
	}

	decisions := make(map[trial.Feature]trial.Decision, len(trial.Features))
	for _, feature := range trial.Features {
		decision, err := co.Gate.Peek(clientID, feature, authenticated)
		if err != nil {
			log.Error().Err(err).Msg("trial")
			httpError(c, models.ErrGeneral)
			return
		}
		decisions[feature] = decision
	}

	c.JSON(http.StatusOK, TrialStatusResponse{Data: decisions})
}
