package model

import "time"

// EventCategory groups campus events for notification subscriptions
type EventCategory string

const (
	CategoryCareer       EventCategory = "Career Fairs"
	CategoryGuestLecture EventCategory = "Guest Lectures"
	CategorySports       EventCategory = "Sports Events"
	CategoryAcademic     EventCategory = "Academic Deadlines"
	CategorySocial       EventCategory = "Social Gatherings"
)

// EventCategories lists every category in display order
var EventCategories = []EventCategory{
	CategoryCareer,
	CategoryGuestLecture,
	CategorySports,
	CategoryAcademic,
	CategorySocial,
}

// Valid reports whether c is a known category
func (c EventCategory) Valid() bool {
	for _, v := range EventCategories {
		if c == v {
			return true
		}
	}
	return false
}

// UniEvent is a campus event. Time uses the HHMM encoding.
type UniEvent struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Category    EventCategory `json:"category"`
	Time        int           `json:"time"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
}

// Notification announces an upcoming event to a subscriber
type Notification struct {
	ID        string        `json:"id"`
	EventID   string        `json:"event_id"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	IsRead    bool          `json:"is_read"`
	Category  EventCategory `json:"category"`
}

// NotificationList is the notification center snapshot returned to clients
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
