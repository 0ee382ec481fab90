// Package router configures the gin engine and attaches all API routes.
package router

import (
	"net/http"
	"net/url"

	docs "github.com/expense-tracker/backend/api"
	"github.com/expense-tracker/backend/internal/auth"
	"github.com/expense-tracker/backend/internal/controllers"
	"github.com/expense-tracker/backend/internal/controllers/healthz"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Options configures the optional parts of the router.
type Options struct {
	// AllowOrigins are the origins allowed for CORS requests. They may
	// contain "*" wildcards. CORS is disabled when empty.
	AllowOrigins []string

	// EnablePprof registers the pprof handlers under /debug/pprof.
	EnablePprof bool
}

// Config creates the gin engine with all middlewares.
//
// The returned teardown function must be called when the engine is not
// used anymore.
func Config(url *url.URL, opts Options) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	httputil.RegisterValidation()

	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("could not unregister Prometheus metrics")
		}
	}

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, teardown, err
	}

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Str("request-id", requestid.Get(c)).Interface("panic", recovered).Msg("Recovery")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": models.ErrGeneral.Error()})
	}))
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Logger()
		})))
	r.Use(MetricsMiddleware())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": http.StatusText(http.StatusNotFound)})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": http.StatusText(http.StatusMethodNotAllowed)})
	})

	// CORS settings
	if len(opts.AllowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", opts.AllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOriginFunc:  originMatcher(opts.AllowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// pprof performance profiles
	if opts.EnablePprof {
		pprof.Register(r, "debug/pprof")
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Expense Tracker"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for the expense tracker: accounts, transactions, budgets, goals and spending reports."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
//
// All routes except the general ones, /health and /auth require a bearer token.
func AttachRoutes(co controllers.Controller, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	healthz.RegisterRoutes(group.Group("/health"), co.DB)
	co.RegisterAuthRoutes(group.Group("/auth"))

	protected := group.Group("", auth.Middleware(co.Tokens))
	co.RegisterProfileRoutes(protected.Group("/profile"))
	co.RegisterAccountRoutes(protected.Group("/accounts"))
	co.RegisterTransactionRoutes(protected.Group("/transactions"))
	co.RegisterBudgetRoutes(protected.Group("/budgets"))
	co.RegisterGoalRoutes(protected.Group("/goals"))
	co.RegisterCategoryRoutes(protected.Group("/categories"))
	co.RegisterReportRoutes(protected.Group("/reports"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs         string `json:"docs" example:"https://example.com/api/docs/index.html"`         // Swagger API documentation
	Version      string `json:"version" example:"https://example.com/api/version"`              // Endpoint returning the version of the backend
	Health       string `json:"health" example:"https://example.com/api/health"`                // Health check
	Auth         string `json:"auth" example:"https://example.com/api/auth"`                    // Registration and login
	Profile      string `json:"profile" example:"https://example.com/api/profile"`              // Profile of the authenticated user
	Accounts     string `json:"accounts" example:"https://example.com/api/accounts"`            // URL of account list endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/transactions"`    // URL of transaction list endpoint
	Budgets      string `json:"budgets" example:"https://example.com/api/budgets"`              // URL of budget list endpoint
	Goals        string `json:"goals" example:"https://example.com/api/goals"`                  // URL of goal list endpoint
	Categories   string `json:"categories" example:"https://example.com/api/categories"`        // URL of category list endpoint
	Reports      string `json:"reports" example:"https://example.com/api/reports"`              // Base URL of the reports
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(ContextURL)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:         url + "/docs/index.html",
			Version:      url + "/version",
			Health:       url + "/health",
			Auth:         url + "/auth",
			Profile:      url + "/profile",
			Accounts:     url + "/accounts",
			Transactions: url + "/transactions",
			Budgets:      url + "/budgets",
			Goals:        url + "/goals",
			Categories:   url + "/categories",
			Reports:      url + "/reports",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}
