package repository

import (
	"context"
	"fmt"

	"campusspot/internal/model"
)

// MemoryRepository is an immutable in-process room catalog.
// Every read returns copies so callers cannot mutate the snapshot.
type MemoryRepository struct {
	rooms []model.Room
	index map[string]int
}

// NewMemoryRepository snapshots rooms after validating them
func NewMemoryRepository(rooms []model.Room) (*MemoryRepository, error) {
	r := &MemoryRepository{
		rooms: make([]model.Room, 0, len(rooms)),
		index: make(map[string]int, len(rooms)),
	}
	for _, room := range rooms {
		if err := room.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog room: %w", err)
		}
		if _, dup := r.index[room.ID]; dup {
			return nil, fmt.Errorf("duplicate room id %q", room.ID)
		}
		r.index[room.ID] = len(r.rooms)
		r.rooms = append(r.rooms, room.Clone())
	}
	return r, nil
}

// NewSeedRepository returns the built-in sample catalog
func NewSeedRepository() *MemoryRepository {
	r, err := NewMemoryRepository(SeedRooms())
	if err != nil {
		panic(fmt.Sprintf("seed catalog is invalid: %v", err))
	}
	return r
}

// ListRooms returns every room in catalog order
func (r *MemoryRepository) ListRooms(ctx context.Context) ([]model.Room, error) {
	out := make([]model.Room, len(r.rooms))
	for i, room := range r.rooms {
		out[i] = room.Clone()
	}
	return out, nil
}

// GetRoom returns a room by id, or nil when absent
func (r *MemoryRepository) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	room := r.rooms[i].Clone()
	return &room, nil
}

// Len returns the number of rooms in the snapshot
func (r *MemoryRepository) Len() int {
	return len(r.rooms)
}

var _ RoomRepository = (*MemoryRepository)(nil)
