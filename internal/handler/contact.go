package handler

import (
	"errors"
	"net/http"

	"glimmer/internal/logger"
	"glimmer/internal/middleware"
	"glimmer/internal/model"
	"glimmer/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// GET /api/contacts
func (h *ContactHandler) List(c *gin.Context) {
	uid := middleware.UserID(c)
	list, err := h.contacts.List(c.Request.Context(), uid)
	if err != nil {
		logger.Error("list contacts failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询失败，请稍后重试"})
		return
	}
	if list == nil {
		list = []model.EmergencyContact{}
	}
	c.JSON(http.StatusOK, gin.H{"contacts": list})
}

// POST /api/contacts
func (h *ContactHandler) Add(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := middleware.UserID(c)
	contact, err := h.contacts.Add(c.Request.Context(), uid, req.Name, req.Email)
	if errors.Is(err, service.ErrTooManyContacts) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("add contact failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "添加失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "contact": contact})
}

// PUT /api/contacts
func (h *ContactHandler) Update(c *gin.Context) {
	var req model.ContactUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := middleware.UserID(c)
	contact, err := h.contacts.SetEnabled(c.Request.Context(), uid, req.ID, req.Enabled)
	if errors.Is(err, service.ErrContactNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("update contact failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "contact": contact})
}

// DELETE /api/contacts
func (h *ContactHandler) Delete(c *gin.Context) {
	var req struct {
		ID int64 `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := middleware.UserID(c)
	err := h.contacts.Delete(c.Request.Context(), uid, req.ID)
	if errors.Is(err, service.ErrContactNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error("delete contact failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除失败，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
