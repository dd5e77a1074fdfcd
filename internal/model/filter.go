package model

// FilterState is the full set of room filters owned by a search session
type FilterState struct {
	MinCapacity      int       `json:"min_capacity"`
	Building         Building  `json:"building"`
	Amenities        []Amenity `json:"amenities"`
	OnlyAvailableNow bool      `json:"only_available_now"`
}

// DefaultFilters returns the initial filter state: every room, available now
func DefaultFilters() FilterState {
	return FilterState{
		MinCapacity:      0,
		Building:         BuildingAll,
		Amenities:        []Amenity{},
		OnlyAvailableNow: true,
	}
}

// FilterPatch is a partial FilterState. Nil fields are unset.
// A non-nil empty Amenities slice explicitly clears the amenities.
type FilterPatch struct {
	MinCapacity      *int      `json:"min_capacity,omitempty"`
	Building         *Building `json:"building,omitempty"`
	Amenities        []Amenity `json:"amenities"`
	OnlyAvailableNow *bool     `json:"only_available_now,omitempty"`
}

// Merge returns f with every set field of p applied
func (f FilterState) Merge(p FilterPatch) FilterState {
	out := f
	if p.MinCapacity != nil {
		out.MinCapacity = *p.MinCapacity
	}
	if p.Building != nil {
		out.Building = *p.Building
	}
	if p.Amenities != nil {
		out.Amenities = append([]Amenity{}, p.Amenities...)
	}
	if p.OnlyAvailableNow != nil {
		out.OnlyAvailableNow = *p.OnlyAvailableNow
	}
	if out.Amenities == nil {
		out.Amenities = []Amenity{}
	}
	return out
}

// AIAnalysisResult is a filter suggestion inferred from free text
type AIAnalysisResult struct {
	Filters   FilterPatch `json:"filters"`
	Reasoning string      `json:"reasoning"`
}
