package handler

import (
	"net/http"

	"campusspot/internal/model"
	"campusspot/internal/service"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler handles attendance planning requests
type AttendanceHandler struct{}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler() *AttendanceHandler {
	return &AttendanceHandler{}
}

// RegisterRoutes mounts the attendance endpoint on api
func (h *AttendanceHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/attendance", h.Calculate)
}

// Calculate handles POST /api/v1/attendance.
// Invalid numbers are reported in the advice, not as an HTTP error.
func (h *AttendanceHandler) Calculate(c *gin.Context) {
	var req model.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, service.CalculateAttendance(req.Total, req.Attended, req.Target))
}
