package handler

import (
	"errors"
	"net/http"
	"strconv"

	"glimmer/internal/logger"
	"glimmer/internal/middleware"
	"glimmer/internal/model"
	"glimmer/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	checkins *service.CheckInService
}

func NewCheckInHandler(checkins *service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkins: checkins}
}

// POST /api/checkin
func (h *CheckInHandler) Create(c *gin.Context) {
	var req model.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := middleware.UserID(c)
	ci, err := h.checkins.Create(c.Request.Context(), uid, req.Emoji, req.Mood)
	if errors.Is(err, service.ErrAlreadyCheckedIn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("checkin failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "签到失败，请稍后重试"})
		return
	}

	logger.Info("checkin.ok", "uid", uid, "mood", ci.Mood)
	c.JSON(http.StatusOK, gin.H{"success": true, "check_in": ci})
}

// GET /api/checkin/today
func (h *CheckInHandler) Today(c *gin.Context) {
	uid := middleware.UserID(c)
	ci, err := h.checkins.Today(c.Request.Context(), uid)
	if err != nil {
		logger.Error("query today failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"check_in": ci})
}

// GET /api/checkins?limit=30
func (h *CheckInHandler) List(c *gin.Context) {
	uid := middleware.UserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	list, err := h.checkins.Recent(c.Request.Context(), uid, limit)
	if err != nil {
		logger.Error("query history failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败，请稍后重试"})
		return
	}
	if list == nil {
		list = []model.CheckIn{}
	}
	c.JSON(http.StatusOK, gin.H{"check_ins": list})
}
