package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"alert-engine/internal/db"
	"alert-engine/internal/engine"
)

type Handler struct {
	db     *db.DB
	engine *engine.Engine
	logger *logrus.Logger
}

func NewHandler(dbConn *db.DB, eng *engine.Engine, logger *logrus.Logger) *Handler {
	return &Handler{db: dbConn, engine: eng, logger: logger}
}

// TriggerEvaluation runs one evaluation pass. Lock contention returns a
// successful skipped result; a run-level failure maps to 500 with the
// elapsed duration preserved.
func (h *Handler) TriggerEvaluation(c *gin.Context) {
	result, err := h.engine.Run(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Evaluation run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"error":      "Internal server error",
			"durationMs": result.DurationMs,
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetNotificationsByUserID(c *gin.Context) {
	userID := c.Param("user_id")
	limit, offset := pagination(c)

	notifications, err := h.db.GetNotificationsByUserID(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Errorf("Get notifications failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) GetAlertInstances(c *gin.Context) {
	limit, offset := pagination(c)

	instances, err := h.db.ListInstances(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Errorf("Get alert instances failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, instances)
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
