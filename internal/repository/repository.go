package repository

import (
	"context"

	"campusspot/internal/model"
)

// RoomRepository provides read access to the room catalog
type RoomRepository interface {
	// ListRooms returns every room in catalog order
	ListRooms(ctx context.Context) ([]model.Room, error)

	// GetRoom returns the room with the given id, or nil when absent
	GetRoom(ctx context.Context, id string) (*model.Room, error)
}

// EventRepository provides read access to campus events
type EventRepository interface {
	ListEvents(ctx context.Context) ([]model.UniEvent, error)
}
