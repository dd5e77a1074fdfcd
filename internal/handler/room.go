package handler

import (
	"errors"
	"net/http"
	"strconv"

	"campusspot/internal/model"
	"campusspot/internal/service"

	"github.com/gin-gonic/gin"
)

// RoomHandler handles room search and availability requests
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// RegisterRoutes mounts the room endpoints on api
func (h *RoomHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/rooms", h.ListRooms)
	api.GET("/rooms/:id", h.GetRoom)
	api.GET("/rooms/:id/availability", h.Availability)
	api.GET("/rooms/:id/schedule.ics", h.Calendar)
	api.POST("/search", h.Search)
	api.POST("/suggest", h.Suggest)
	api.GET("/events", h.ListEvents)
}

// ListRooms handles GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.ListRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rooms: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "total": len(rooms)})
}

// GetRoom handles GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.roomService.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get room: " + err.Error()})
		return
	}

	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, room)
}

// Availability handles GET /api/v1/rooms/:id/availability?time=HHMM&day=D
func (h *RoomHandler) Availability(c *gin.Context) {
	timeCode, err := optionalInt(c, "time")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time: must be HHMM"})
		return
	}
	day, err := optionalInt(c, "day")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day: must be 0-6"})
		return
	}

	resp, err := h.roomService.Availability(c.Request.Context(), c.Param("id"), timeCode, day)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Availability failed: " + err.Error()})
		return
	}

	if resp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Calendar handles GET /api/v1/rooms/:id/schedule.ics
func (h *RoomHandler) Calendar(c *gin.Context) {
	cal, found, err := h.roomService.Calendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build calendar: " + err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.Header("Content-Disposition", "inline; filename=\""+c.Param("id")+".ics\"")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal))
}

// Search handles POST /api/v1/search
func (h *RoomHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Validate filters
	if req.Filters != nil {
		if req.Filters.MinCapacity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_capacity must not be negative"})
			return
		}
		if b := req.Filters.Building; b != "" && b != model.BuildingAll && !b.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown building: " + string(req.Filters.Building)})
			return
		}
		for _, a := range req.Filters.Amenities {
			if !a.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown amenity: " + string(a)})
				return
			}
		}
	}

	response, err := h.roomService.Search(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Suggest handles POST /api/v1/suggest
func (h *RoomHandler) Suggest(c *gin.Context) {
	var req model.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.roomService.Suggest(c.Request.Context(), req.Query))
}

// ListEvents handles GET /api/v1/events
func (h *RoomHandler) ListEvents(c *gin.Context) {
	events, err := h.roomService.ListEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// optionalInt reads an integer query parameter; nil when absent
func optionalInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
