package handler

import (
	"net/http"

	"glimmer/internal/logger"
	"glimmer/internal/reminder"

	"github.com/gin-gonic/gin"
)

// CronHandler is the scheduler-facing trigger for the inactivity sweep,
// guarded by a shared-secret bearer token.
type CronHandler struct {
	runner *reminder.Runner
	secret string
}

func NewCronHandler(runner *reminder.Runner, secret string) *CronHandler {
	return &CronHandler{runner: runner, secret: secret}
}

// GET /api/cron/reminder
func (h *CronHandler) Run(c *gin.Context) {
	if h.secret != "" && c.GetHeader("Authorization") != "Bearer "+h.secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未授权"})
		return
	}

	if err := h.runner.Run(c.Request.Context()); err != nil {
		logger.Error("reminder run failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "提醒检查失败", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "提醒检查完成"})
}
