package service

import "campusspot/internal/model"

// roomPredicate is one step of the filter chain
type roomPredicate func(room model.Room) bool

// ApplyFilters narrows rooms to those matching every filter, evaluated at
// timeCode/day for OnlyAvailableNow. Input order is preserved. The result is
// never nil, so an empty match is distinguishable from "not filtered".
func ApplyFilters(rooms []model.Room, filters model.FilterState, timeCode, day int) []model.Room {
	chain := []roomPredicate{
		func(r model.Room) bool {
			return filters.Building == model.BuildingAll || filters.Building == "" || r.Building == filters.Building
		},
		func(r model.Room) bool {
			return r.Capacity >= filters.MinCapacity
		},
		func(r model.Room) bool {
			for _, required := range filters.Amenities {
				if !r.Amenities.Has(required) {
					return false
				}
			}
			return true
		},
		func(r model.Room) bool {
			return !filters.OnlyAvailableNow || IsAvailable(r, timeCode, day).Available
		},
	}

	out := make([]model.Room, 0, len(rooms))
	for _, room := range rooms {
		if matchesAll(room, chain) {
			out = append(out, room)
		}
	}
	return out
}

func matchesAll(room model.Room, chain []roomPredicate) bool {
	for _, p := range chain {
		if !p(room) {
			return false
		}
	}
	return true
}
