package handler

import (
	"net/http"

	"campusspot/internal/model"
	"campusspot/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler handles event notification requests
type NotificationHandler struct {
	center *service.NotificationCenter
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(center *service.NotificationCenter) *NotificationHandler {
	return &NotificationHandler{
		center: center,
	}
}

// RegisterRoutes mounts the notification endpoints on api
func (h *NotificationHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/notifications", h.List)
	api.POST("/notifications/:id/read", h.MarkRead)
	api.DELETE("/notifications", h.ClearAll)
	api.GET("/subscriptions", h.Subscriptions)
	api.POST("/subscriptions/toggle", h.Toggle)
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.center.List())
}

// MarkRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if !h.center.MarkRead(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, h.center.List())
}

// ClearAll handles DELETE /api/v1/notifications
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	h.center.ClearAll()
	c.JSON(http.StatusOK, h.center.List())
}

// Subscriptions handles GET /api/v1/subscriptions
func (h *NotificationHandler) Subscriptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"subscriptions": h.center.Subscriptions(),
		"categories":    model.EventCategories,
	})
}

// Toggle handles POST /api/v1/subscriptions/toggle
func (h *NotificationHandler) Toggle(c *gin.Context) {
	var req model.ToggleSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	subscribed, err := h.center.Toggle(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":      req.Category,
		"subscribed":    subscribed,
		"subscriptions": h.center.Subscriptions(),
	})
}
