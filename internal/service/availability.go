package service

import (
	"errors"
	"fmt"
	"time"

	"campusspot/internal/config"
	"campusspot/internal/model"
)

// OffHoursTimeCode is the reference time used outside the operating window.
// It lies above every valid slot bound, so no scheduled class contains it.
const OffHoursTimeCode = 2400

// ErrInvalidReference is returned for an out-of-range reference time or day
var ErrInvalidReference = errors.New("invalid reference time")

// Availability is the free/busy state of a room at a reference time
type Availability struct {
	Available         bool   `json:"available"`
	OccupyingActivity string `json:"occupying_activity,omitempty"`
}

// occupyingSlot returns the slot of day that contains timeCode, if any
func occupyingSlot(room model.Room, timeCode, day int) (model.TimeSlot, bool) {
	for _, slot := range room.Schedule[day] {
		if slot.Contains(timeCode) {
			return slot, true
		}
	}
	return model.TimeSlot{}, false
}

// IsAvailable reports whether room is free at timeCode (HHMM) on day.
// A day without slots is free.
func IsAvailable(room model.Room, timeCode, day int) Availability {
	if slot, busy := occupyingSlot(room, timeCode, day); busy {
		return Availability{Available: false, OccupyingActivity: slot.Course}
	}
	return Availability{Available: true}
}

// NextFreeTime returns the end of the occupying slot as H:MM.
// ok is false when the room is already free.
func NextFreeTime(room model.Room, timeCode, day int) (string, bool) {
	slot, busy := occupyingSlot(room, timeCode, day)
	if !busy {
		return "", false
	}
	return FormatTimeCode(slot.End), true
}

// FormatTimeCode renders an HHMM code as H:MM (hour not padded)
func FormatTimeCode(code int) string {
	return fmt.Sprintf("%d:%02d", code/100, code%100)
}

// ReferenceClock derives the reference time code and day from wall time
type ReferenceClock struct {
	now       func() time.Time
	loc       *time.Location
	openHour  int
	closeHour int
}

// NewReferenceClock creates a clock for the configured operating window.
// now may be nil to use time.Now.
func NewReferenceClock(cfg *config.ClockConfig, now func() time.Time) (*ReferenceClock, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid clock timezone %q: %w", cfg.Timezone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &ReferenceClock{
		now:       now,
		loc:       loc,
		openHour:  cfg.OpenHour,
		closeHour: cfg.CloseHour,
	}, nil
}

// Now returns the current reference time code and day
func (c *ReferenceClock) Now() (int, int) {
	return c.At(c.now())
}

// At returns the reference time code and day for t.
// Hours before openHour or after closeHour map to OffHoursTimeCode.
// Saturday and Sunday collapse onto Monday's schedule.
func (c *ReferenceClock) At(t time.Time) (int, int) {
	t = t.In(c.loc)

	timeCode := t.Hour()*100 + t.Minute()
	if t.Hour() < c.openHour || t.Hour() > c.closeHour {
		timeCode = OffHoursTimeCode
	}

	day := int(t.Weekday())
	if day == 0 || day == 6 {
		day = 1
	}

	return timeCode, day
}
