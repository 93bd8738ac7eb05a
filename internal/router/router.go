// Package router sets up the gin engine, the middleware chain and the
// top level routes.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"

	"github.com/financetrackr/backend/internal/config"
	v1 "github.com/financetrackr/backend/internal/controllers/v1"
	"github.com/financetrackr/backend/internal/trial"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router and all middlewares that apply to every route.
func Config(cfg config.Config) (*gin.Engine, error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, v1.ErrorResponse{Error: "This HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	if len(cfg.CORSAllowOrigins) > 0 {
		log.Debug().Strs("origins", cfg.CORSAllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOriginFunc: func(origin string) bool {
				for _, pattern := range cfg.CORSAllowOrigins {
					if glob.Glob(pattern, origin) {
						return true
					}
				}
				return false
			},
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	r.Use(MetricsMiddleware())

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Info().Str("version", version).Msg("Router")

	return r, nil
}

// AttachRoutes attaches the API routes to the router group that is passed.
// Separating this from Config() allows attaching the API to different
// paths for different use cases.
func AttachRoutes(co v1.Controller, group *gin.RouterGroup, secret string) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/healthz", GetHealthz)
	group.OPTIONS("/healthz", OptionsHealthz)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		pprof.RouteRegister(group, "debug/pprof")
	}

	v1grp := group.Group("/v1")
	{
		v1grp.GET("", GetV1)
		v1grp.OPTIONS("", OptionsV1)
	}

	v1grp.Use(Authenticate(secret))
	v1grp.Use(DeviceID())

	co.RegisterCategoryRoutes(v1grp.Group("/categories"))
	co.RegisterTrialRoutes(v1grp.Group("/trial"))

	co.RegisterTransactionRoutes(v1grp.Group("/transactions", TrialGate(co.Gate, trial.FeatureTransactions)))
	co.RegisterBudgetRoutes(v1grp.Group("/budgets", TrialGate(co.Gate, trial.FeatureBudgets)))
	co.RegisterGoalRoutes(v1grp.Group("/goals", TrialGate(co.Gate, trial.FeatureGoals)))
	co.RegisterAnalyticsRoutes(v1grp.Group("/analytics", TrialGate(co.Gate, trial.FeatureAnalytics)))
}

// RootResponse is the response body for the API root.
type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	V1      string `json:"v1"`
	Version string `json:"version"`
	Healthz string `json:"healthz"`
	Metrics string `json:"metrics"`
}

// GetRoot returns the link overview for the API.
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			V1:      "/v1",
			Version: "/version",
			Healthz: "/healthz",
			Metrics: "/metrics",
		},
	})
}

func OptionsRoot(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

// VersionResponse is the response body for the version endpoint.
type VersionResponse struct {
	Data VersionObject `json:"data"`
}

type VersionObject struct {
	Version string `json:"version"`
}

// GetVersion returns the version of the running backend.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

func OptionsVersion(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

// GetHealthz reports process liveness.
func GetHealthz(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func OptionsHealthz(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

// V1Response is the response body for the v1 API root.
type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Transactions string `json:"transactions"`
	Budgets      string `json:"budgets"`
	Goals        string `json:"goals"`
	Categories   string `json:"categories"`
	Analytics    string `json:"analytics"`
	Trial        string `json:"trial"`
}

// GetV1 returns general information about the v1 API.
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Transactions: "/v1/transactions",
			Budgets:      "/v1/budgets",
			Goals:        "/v1/goals",
			Categories:   "/v1/categories",
			Analytics:    "/v1/analytics",
			Trial:        "/v1/trial",
		},
	})
}

func OptionsV1(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}
