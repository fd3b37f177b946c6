package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/safeland/internal/infra/config"
	"github.com/yanqian/safeland/internal/observability"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, metrics *observability.Metrics, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	logger = logger.With("component", "http.router")
	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(logger),
		metricsMiddleware(metrics),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		bodyLimit(maxBodyBytes),
		errorHandlingMiddleware(logger),
	)

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		riskGroup := api.Group("/risk")
		riskGroup.GET("/assessment", handler.Assess)
		riskGroup.GET("/summarize", handler.Summarize)
		riskGroup.GET("/weather", handler.Weather)
		riskGroup.GET("/location", handler.Location)

		api.GET("/recommendations", handler.Recommend)
		api.POST("/recommendations", handler.Recommend)
		api.POST("/chat", handler.Chat)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
