package model

// SearchRequest represents a room search request.
// Filters is the session's current filter state; the parsed query is merged over it.
// Time (HHMM) and Day (0-6) override the reference clock when set.
type SearchRequest struct {
	Query   string       `json:"query"`
	Filters *FilterState `json:"filters,omitempty"`
	Time    *int         `json:"time,omitempty"`
	Day     *int         `json:"day,omitempty"`
}

// RoomResult is a room with its availability at the reference time
type RoomResult struct {
	Room
	Available         bool   `json:"available"`
	OccupyingActivity string `json:"occupying_activity,omitempty"`
	NextFreeTime      string `json:"next_free_time,omitempty"`
}

// SearchResponse represents a room search response.
// Rooms is empty, never null, when nothing matched. SuggestionApplied
// reports whether a free-text query was merged into Filters.
type SearchResponse struct {
	Rooms             []RoomResult `json:"rooms"`
	Total             int          `json:"total"`
	Filters           FilterState  `json:"filters"`
	SuggestionApplied bool         `json:"suggestion_applied"`
	Reasoning         string       `json:"reasoning,omitempty"`
	ReferenceTime     int          `json:"reference_time"`
	ReferenceDay      int          `json:"reference_day"`
	Took              int64        `json:"took_ms"`
}

// AvailabilityResponse describes one room at a reference time/day
type AvailabilityResponse struct {
	RoomID            string `json:"room_id"`
	RoomName          string `json:"room_name"`
	Available         bool   `json:"available"`
	OccupyingActivity string `json:"occupying_activity,omitempty"`
	NextFreeTime      string `json:"next_free_time,omitempty"`
	ReferenceTime     int    `json:"reference_time"`
	ReferenceDay      int    `json:"reference_day"`
}

// SuggestRequest asks for a filter suggestion from free text
type SuggestRequest struct {
	Query string `json:"query" binding:"required"`
}

// AttendanceRequest is the input of the attendance planner
type AttendanceRequest struct {
	Total    int `json:"total"`
	Attended int `json:"attended"`
	Target   int `json:"target"`
}

// ToggleSubscriptionRequest flips a notification category subscription
type ToggleSubscriptionRequest struct {
	Category EventCategory `json:"category" binding:"required"`
}
