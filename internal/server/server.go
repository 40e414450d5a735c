// internal/server/server.go
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"formflow/internal/common/config"
	"formflow/internal/common/logger"
	"formflow/internal/services/analysis"
	"formflow/internal/services/generation"
	"formflow/internal/services/notification"
	"formflow/internal/services/submission"
)

// Handlers collects the per-service HTTP handlers mounted on the router.
type Handlers struct {
	Analysis     *analysis.Handler
	Generation   *generation.Handler
	Submission   *submission.Handler
	Notification *notification.Handler
}

// NewRouter builds the gin engine with middleware and all API routes.
func NewRouter(cfg *config.Config, handlers Handlers, log logger.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(Recovery(log))
	router.Use(RequestLogger(log))
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		form := api.Group("/form")
		handlers.Generation.Register(form)
		handlers.Submission.RegisterSubmit(form)

		handlers.Submission.RegisterQueries(api.Group("/submission"))
		handlers.Analysis.Register(api.Group("/analysis"))
		handlers.Notification.RegisterNotification(api.Group("/notification"))
		handlers.Notification.RegisterEmail(api.Group("/email"))
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Authorization", "Content-Type", "X-Requested-With"}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
