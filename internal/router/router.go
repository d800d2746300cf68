// Package router assembles the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/examhub-lk/examhub-api/internal/handler"
	"github.com/examhub-lk/examhub-api/internal/middleware"
	"github.com/examhub-lk/examhub-api/internal/models"
	"github.com/examhub-lk/examhub-api/internal/service"
	"github.com/examhub-lk/examhub-api/pkg/logger"
	corsmiddleware "github.com/examhub-lk/examhub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/examhub-lk/examhub-api/pkg/middleware/requestid"
)

// Deps are the handlers and collaborators mounted on the engine.
type Deps struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Verifier       middleware.TokenVerifier

	MetricsHandler      *handler.MetricsHandler
	SearchHandler       *handler.SearchHandler
	SubjectHandler      *handler.SubjectHandler
	FailedSearchHandler *handler.FailedSearchHandler
}

// New builds the HTTP engine with the middleware chain and every route.
func New(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.APIPrefix == "" {
		deps.APIPrefix = "/api/v1"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(deps.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics, "/metrics"))
	r.Use(middleware.WithResponseMeta())

	if deps.MetricsHandler != nil {
		r.GET("/health", deps.MetricsHandler.Health)
		r.GET("/ready", deps.MetricsHandler.Ready)
		r.GET("/metrics", deps.MetricsHandler.Prometheus)
	}
	if deps.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.APIPrefix)
	if deps.SearchHandler != nil {
		api.GET("/documents/search", deps.SearchHandler.Search)
	}
	if deps.SubjectHandler != nil {
		api.GET("/subjects", deps.SubjectHandler.List)
	}
	if deps.FailedSearchHandler != nil && deps.Verifier != nil {
		admin := api.Group("/admin", middleware.JWT(deps.Verifier), middleware.RequireRoles(models.RoleAdmin))
		admin.GET("/failed-searches", deps.FailedSearchHandler.List)
		admin.GET("/failed-searches/export", deps.FailedSearchHandler.Export)
		admin.DELETE("/failed-searches/:id", deps.FailedSearchHandler.Dismiss)
	}

	return r
}
