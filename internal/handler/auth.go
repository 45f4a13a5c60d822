package handler

import (
	"errors"
	"fmt"
	"net/http"

	"glimmer/internal/logger"
	"glimmer/internal/middleware"
	"glimmer/internal/model"
	"glimmer/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth      *service.AuthService
	jwtSecret []byte
}

func NewAuthHandler(auth *service.AuthService, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{auth: auth, jwtSecret: jwtSecret}
}

// POST /api/auth/send-code
func (h *AuthHandler) SendCode(c *gin.Context) {
	var req model.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	retryAfter, err := h.auth.SendVerificationCode(c.Request.Context(), req.Email)
	if errors.Is(err, service.ErrResendTooSoon) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": fmt.Sprintf("请等待 %d 秒后再试", retryAfter)})
		return
	}
	if errors.Is(err, service.ErrInvalidEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("send code failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "验证码发送失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Register(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		logger.Error("register failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败，请稍后重试"})
		return
	}

	logger.Info("register.ok", "uid", u.ID, "email", u.Email)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": model.UserProfile{ID: u.ID, Email: u.Email, Name: u.Name}})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("login.failed", "email", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, u.ID, u.Name)
	if err != nil {
		logger.Error("token sign failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登录失败，请稍后重试"})
		return
	}

	logger.Info("login.ok", "uid", u.ID)
	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  model.UserProfile{ID: u.ID, Email: u.Email, Name: u.Name},
	})
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.auth.ResetPassword(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		logger.Error("reset password failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "重置失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PUT /api/user/name
func (h *AuthHandler) UpdateName(c *gin.Context) {
	var req model.UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := middleware.UserID(c)
	if err := h.auth.UpdateName(c.Request.Context(), uid, req.Name); err != nil {
		logger.Error("update name failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
