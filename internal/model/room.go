package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Building identifies one of the campus buildings
type Building string

const (
	BuildingEngineering Building = "Engineering Block"
	BuildingScience     Building = "Science Center"
	BuildingArts        Building = "Arts & Humanities"
	BuildingLibrary     Building = "Central Library"

	// BuildingAll is the filter sentinel matching every building
	BuildingAll Building = "All"
)

// Buildings lists every real building in display order
var Buildings = []Building{BuildingEngineering, BuildingScience, BuildingArts, BuildingLibrary}

// Valid reports whether b is a real building (not the All sentinel)
func (b Building) Valid() bool {
	for _, v := range Buildings {
		if b == v {
			return true
		}
	}
	return false
}

// Amenity is a room feature a filter can require
type Amenity string

const (
	AmenityProjector  Amenity = "Projector"
	AmenityWhiteboard Amenity = "Whiteboard"
	AmenityOutlets    Amenity = "Power Outlets"
	AmenityAC         Amenity = "Air Conditioning"
	AmenityComputers  Amenity = "Computers"
	AmenityQuietZone  Amenity = "Quiet Zone"
)

// Amenities lists every amenity in display order
var Amenities = []Amenity{
	AmenityProjector,
	AmenityWhiteboard,
	AmenityOutlets,
	AmenityAC,
	AmenityComputers,
	AmenityQuietZone,
}

// Valid reports whether a is a known amenity
func (a Amenity) Valid() bool {
	for _, v := range Amenities {
		if a == v {
			return true
		}
	}
	return false
}

// TimeSlot is a scheduled occupation of a room.
// Start and End use the HHMM encoding (900 = 9:00, 1430 = 14:30).
type TimeSlot struct {
	Start  int    `json:"start" db:"start"`
	End    int    `json:"end" db:"end"`
	Course string `json:"course,omitempty" db:"course"`
}

// Valid checks the HHMM bounds of the slot and that it is non-empty
func (s TimeSlot) Valid() bool {
	return ValidTimeCode(s.Start) && ValidTimeCode(s.End) && s.Start < s.End
}

// Contains reports whether timeCode falls in [Start, End)
func (s TimeSlot) Contains(timeCode int) bool {
	return timeCode >= s.Start && timeCode < s.End
}

// ValidTimeCode reports whether code is a real HHMM clock value
func ValidTimeCode(code int) bool {
	return code >= 0 && code <= 2359 && code%100 < 60
}

// Schedule maps day of week (0 = Sunday .. 6 = Saturday) to ordered slots
type Schedule map[int][]TimeSlot

// Validate checks day keys and every slot
func (s Schedule) Validate() error {
	for day, slots := range s {
		if day < 0 || day > 6 {
			return fmt.Errorf("invalid day %d", day)
		}
		for _, slot := range slots {
			if !slot.Valid() {
				return fmt.Errorf("invalid slot %d-%d on day %d", slot.Start, slot.End, day)
			}
		}
	}
	return nil
}

// Value implements driver.Valuer interface
func (s Schedule) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *Schedule) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	return json.Unmarshal(asBytes(value), s)
}

// AmenitySet is a room's amenities, stored as a JSON array
type AmenitySet []Amenity

// Has reports whether the set contains a
func (as AmenitySet) Has(a Amenity) bool {
	for _, v := range as {
		if v == a {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer interface
func (as AmenitySet) Value() (driver.Value, error) {
	if as == nil {
		return nil, nil
	}
	return json.Marshal(as)
}

// Scan implements sql.Scanner interface
func (as *AmenitySet) Scan(value interface{}) error {
	if value == nil {
		*as = nil
		return nil
	}
	return json.Unmarshal(asBytes(value), as)
}

func asBytes(value interface{}) []byte {
	if b, ok := value.([]byte); ok {
		return b
	}
	return []byte(fmt.Sprint(value))
}

// Room is a bookable campus room
type Room struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Building  Building   `json:"building" db:"building"`
	Floor     int        `json:"floor" db:"floor"`
	Capacity  int        `json:"capacity" db:"capacity"`
	Amenities AmenitySet `json:"amenities" db:"amenities"`
	Schedule  Schedule   `json:"schedule" db:"schedule"`
	ImageURL  *string    `json:"image_url,omitempty" db:"image_url"`
}

// Clone returns a deep copy so catalog snapshots stay immutable
func (r Room) Clone() Room {
	out := r
	if r.Amenities != nil {
		out.Amenities = append(AmenitySet(nil), r.Amenities...)
	}
	if r.Schedule != nil {
		out.Schedule = make(Schedule, len(r.Schedule))
		for day, slots := range r.Schedule {
			out.Schedule[day] = append([]TimeSlot(nil), slots...)
		}
	}
	if r.ImageURL != nil {
		u := *r.ImageURL
		out.ImageURL = &u
	}
	return out
}

// Validate checks the invariants of a catalog room
func (r Room) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("room id is required")
	}
	if !r.Building.Valid() {
		return fmt.Errorf("room %s: invalid building %q", r.ID, r.Building)
	}
	if r.Capacity < 0 {
		return fmt.Errorf("room %s: negative capacity", r.ID)
	}
	seen := make(map[Amenity]bool, len(r.Amenities))
	for _, a := range r.Amenities {
		if !a.Valid() {
			return fmt.Errorf("room %s: invalid amenity %q", r.ID, a)
		}
		if seen[a] {
			return fmt.Errorf("room %s: duplicate amenity %q", r.ID, a)
		}
		seen[a] = true
	}
	if err := r.Schedule.Validate(); err != nil {
		return fmt.Errorf("room %s: %w", r.ID, err)
	}
	return nil
}
