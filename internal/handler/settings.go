package handler

import (
	"net/http"

	"glimmer/internal/logger"
	"glimmer/internal/middleware"
	"glimmer/internal/model"
	"glimmer/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GET /api/settings/reminder
func (h *SettingsHandler) Get(c *gin.Context) {
	uid := middleware.UserID(c)
	rs, err := h.settings.Get(c.Request.Context(), uid)
	if err != nil {
		logger.Error("query settings failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": rs})
}

// PUT /api/settings/reminder
func (h *SettingsHandler) Update(c *gin.Context) {
	var req model.ReminderSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := middleware.UserID(c)
	rs, err := h.settings.Upsert(c.Request.Context(), uid, req)
	if err != nil {
		logger.Error("save settings failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": rs})
}
