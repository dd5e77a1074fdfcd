package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusspot/internal/model"
	"campusspot/internal/repository"

	"go.uber.org/zap"
)

// RoomService handles room search and availability
type RoomService struct {
	repo      repository.RoomRepository
	events    repository.EventRepository
	suggester Suggester
	clock     *ReferenceClock
	logger    *zap.Logger
}

// NewRoomService creates a new room service
func NewRoomService(
	repo repository.RoomRepository,
	events repository.EventRepository,
	suggester Suggester,
	clock *ReferenceClock,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		repo:      repo,
		events:    events,
		suggester: suggester,
		clock:     clock,
		logger:    logger,
	}
}

// Search merges the suggestion for req.Query over the current filters and
// returns the matching rooms with their availability
func (s *RoomService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	start := time.Now()

	timeCode, day, err := s.reference(req.Time, req.Day)
	if err != nil {
		return nil, err
	}

	filters := model.DefaultFilters()
	if req.Filters != nil {
		filters = req.Filters.Merge(model.FilterPatch{})
		if filters.Building == "" {
			filters.Building = model.BuildingAll
		}
	}

	var reasoning string
	query := strings.TrimSpace(req.Query)
	if query != "" {
		result := s.suggester.Suggest(ctx, query)
		filters = filters.Merge(result.Filters)
		reasoning = result.Reasoning
	}

	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	matched := ApplyFilters(rooms, filters, timeCode, day)
	results := make([]model.RoomResult, 0, len(matched))
	for _, room := range matched {
		results = append(results, roomResult(room, timeCode, day))
	}

	took := time.Since(start).Milliseconds()
	s.logger.Info("room search",
		zap.String("query", query),
		zap.String("suggester", s.suggester.Name()),
		zap.Int("matched", len(results)),
		zap.Int("time", timeCode),
		zap.Int("day", day),
		zap.Int64("took_ms", took),
	)

	return &model.SearchResponse{
		Rooms:             results,
		Total:             len(results),
		Filters:           filters,
		SuggestionApplied: query != "",
		Reasoning:         reasoning,
		ReferenceTime:     timeCode,
		ReferenceDay:      day,
		Took:              took,
	}, nil
}

// Availability returns the state of one room. It returns nil when the room
// does not exist.
func (s *RoomService) Availability(ctx context.Context, id string, timeCode, day *int) (*model.AvailabilityResponse, error) {
	t, d, err := s.reference(timeCode, day)
	if err != nil {
		return nil, err
	}

	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, nil
	}

	r := roomResult(*room, t, d)
	return &model.AvailabilityResponse{
		RoomID:            room.ID,
		RoomName:          room.Name,
		Available:         r.Available,
		OccupyingActivity: r.OccupyingActivity,
		NextFreeTime:      r.NextFreeTime,
		ReferenceTime:     t,
		ReferenceDay:      d,
	}, nil
}

// Suggest returns the raw suggestion for query
func (s *RoomService) Suggest(ctx context.Context, query string) *model.AIAnalysisResult {
	return s.suggester.Suggest(ctx, strings.TrimSpace(query))
}

// ListRooms returns the whole catalog
func (s *RoomService) ListRooms(ctx context.Context) ([]model.Room, error) {
	return s.repo.ListRooms(ctx)
}

// GetRoom returns one room, or nil if it does not exist
func (s *RoomService) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	return s.repo.GetRoom(ctx, id)
}

// Calendar renders the weekly timetable of a room for the current week.
// found is false when the room does not exist.
func (s *RoomService) Calendar(ctx context.Context, id string) (cal string, found bool, err error) {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return "", false, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return "", false, nil
	}
	return RoomCalendar(*room, s.clock.now().In(s.clock.loc)), true, nil
}

// ListEvents returns the campus event feed
func (s *RoomService) ListEvents(ctx context.Context) ([]model.UniEvent, error) {
	return s.events.ListEvents(ctx)
}

// reference resolves the reference time and day, preferring explicit values
func (s *RoomService) reference(timeCode, day *int) (int, int, error) {
	t, d := s.clock.Now()
	if timeCode != nil {
		if !model.ValidTimeCode(*timeCode) {
			return 0, 0, fmt.Errorf("%w: time %d is not HHMM", ErrInvalidReference, *timeCode)
		}
		t = *timeCode
	}
	if day != nil {
		if *day < 0 || *day > 6 {
			return 0, 0, fmt.Errorf("%w: day %d is not 0-6", ErrInvalidReference, *day)
		}
		d = *day
	}
	return t, d, nil
}

func roomResult(room model.Room, timeCode, day int) model.RoomResult {
	a := IsAvailable(room, timeCode, day)
	r := model.RoomResult{
		Room:              room,
		Available:         a.Available,
		OccupyingActivity: a.OccupyingActivity,
	}
	if next, ok := NextFreeTime(room, timeCode, day); ok {
		r.NextFreeTime = next
	}
	return r
}
