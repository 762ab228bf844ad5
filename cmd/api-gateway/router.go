package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/missing-persons-api/internal/handler"
	"github.com/noah-isme/missing-persons-api/internal/middleware"
	"github.com/noah-isme/missing-persons-api/internal/service"
	"github.com/noah-isme/missing-persons-api/pkg/config"
	"github.com/noah-isme/missing-persons-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/missing-persons-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/missing-persons-api/pkg/middleware/requestid"
)

type routerDeps struct {
	persons *service.PersonService
	history *service.HistoryService
	reports *service.ReportService
	metrics *service.MetricsService
	checks  map[string]handler.ReadinessCheck
	logger  *zap.Logger
}

func newRouter(cfg *config.Config, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics))
	r.Use(middleware.WithResponseMeta())

	ops := handler.NewMetricsHandler(deps.metrics, deps.checks)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	persons := handler.NewPersonHandler(deps.persons)
	history := handler.NewHistoryHandler(deps.history)
	reports := handler.NewReportHandler(deps.reports)

	api := r.Group(cfg.APIPrefix)
	api.GET("/persons", persons.List)
	api.GET("/persons/:id", persons.Get)
	api.GET("/persons/:id/history", history.List)
	api.GET("/persons/:id/history/export", history.Export)
	api.POST("/cases/:caseId/reports", reports.Submit)
	api.GET("/cases/:caseId/reports", reports.ListSubmissions)

	return r
}
