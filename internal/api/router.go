package api

import (
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"alert-engine/internal/config"
	"alert-engine/internal/db"
	"alert-engine/internal/engine"
)

func NewRouter(dbConn *db.DB, eng *engine.Engine, logger *logrus.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	h := NewHandler(dbConn, eng, logger)
	api := r.Group(cfg.API.BasePath)
	{
		cron := api.Group("/cron", CronAuthMiddleware(cfg.Cron.Secret))
		{
			cron.GET("/alerts", h.TriggerEvaluation)
			cron.POST("/alerts", h.TriggerEvaluation)
		}

		api.GET("/notifications/user/:user_id", h.GetNotificationsByUserID)
		api.GET("/alert-instances", h.GetAlertInstances)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", func(c *gin.Context) {
		metrics.WritePrometheus(c.Writer, true)
	})

	return r
}
