package router

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	v1 "github.com/financetrackr/backend/internal/controllers/v1"
	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/trial"
)

// DeviceCookie is the cookie that identifies an anonymous trial client.
const DeviceCookie = "ft_device"

const deviceCookieMaxAge = 365 * 24 * time.Hour

// Authenticate verifies the bearer token when one is present. Requests
// without a token stay anonymous and fall through to the trial gate, a
// present but invalid token is rejected.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || secret == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Error: models.ErrUnauthenticated.Error()})
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Error: models.ErrUnauthenticated.Error()})
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Error: models.ErrUnauthenticated.Error()})
			return
		}

		c.Set(v1.ContextUserID, subject)
		c.Set(v1.ContextAuthenticated, true)
		c.Next()
	}
}

// DeviceID ensures every client carries a device cookie. Anonymous
// requests use the device id as their user id so that trial data
// survives until the client signs up.
func DeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(DeviceCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(DeviceCookie, id, int(deviceCookieMaxAge.Seconds()), "/", "", false, true)
		}

		c.Set(v1.ContextClientID, id)
		if !c.GetBool(v1.ContextAuthenticated) {
			c.Set(v1.ContextUserID, id)
		}

		c.Next()
	}
}

// TrialGate rejects anonymous clients whose free visits for the feature
// are used up. It never consumes a visit itself, clients do that through
// the trial endpoint once per visit.
func TrialGate(gate *trial.Gate, feature trial.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		decision, err := gate.Peek(c.GetString(v1.ContextClientID), feature, c.GetBool(v1.ContextAuthenticated))
		if err != nil {
			log.Error().Err(err).Str("feature", string(feature)).Msg("trial")
			c.AbortWithStatusJSON(http.StatusInternalServerError, v1.ErrorResponse{Error: models.ErrGeneral.Error()})
			return
		}

		if !decision.Allowed {
			c.Header("X-Trial-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      trial.ErrTrialExpired.Error(),
				"redirectTo": decision.RedirectTo,
			})
			return
		}

		if !decision.Authenticated {
			c.Header("X-Trial-Remaining", strconv.Itoa(decision.RemainingUses))
		}

		c.Next()
	}
}

var requestCount = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}
