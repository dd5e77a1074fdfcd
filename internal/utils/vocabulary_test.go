package utils

import (
	"testing"

	"campusspot/internal/model"
)

func TestMatchBuilding(t *testing.T) {
	tests := []struct {
		input  string
		want   model.Building
		wantOK bool
	}{
		{input: "Central Library", want: model.BuildingLibrary, wantOK: true},
		{input: "  central   LIBRARY ", want: model.BuildingLibrary, wantOK: true},
		{input: "library", want: model.BuildingLibrary, wantOK: true},
		{input: "Engineering", want: model.BuildingEngineering, wantOK: true},
		{input: "Arts and Humanities", want: model.BuildingArts, wantOK: true},
		{input: "All", want: model.BuildingAll, wantOK: true},
		{input: "Gym", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchBuilding(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MatchBuilding(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMatchAmenity(t *testing.T) {
	tests := []struct {
		input  string
		want   model.Amenity
		wantOK bool
	}{
		{input: "Projector", want: model.AmenityProjector, wantOK: true},
		{input: "AC", want: model.AmenityAC, wantOK: true},
		{input: "air conditioning", want: model.AmenityAC, wantOK: true},
		{input: "Power Outlets", want: model.AmenityOutlets, wantOK: true},
		{input: "quiet zone", want: model.AmenityQuietZone, wantOK: true},
		{input: "computers", want: model.AmenityComputers, wantOK: true},
		{input: "Jacuzzi", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchAmenity(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MatchAmenity(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
