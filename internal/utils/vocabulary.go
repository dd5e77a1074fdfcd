package utils

import (
	"strings"

	"campusspot/internal/model"
)

// Aliases a remote model tends to produce instead of the canonical names
var buildingAliases = map[string]model.Building{
	"engineering":         model.BuildingEngineering,
	"engineering block":   model.BuildingEngineering,
	"eng block":           model.BuildingEngineering,
	"science":             model.BuildingScience,
	"science center":      model.BuildingScience,
	"science centre":      model.BuildingScience,
	"lab block":           model.BuildingScience,
	"arts":                model.BuildingArts,
	"humanities":          model.BuildingArts,
	"arts & humanities":   model.BuildingArts,
	"arts and humanities": model.BuildingArts,
	"library":             model.BuildingLibrary,
	"central library":     model.BuildingLibrary,
	"all":                 model.BuildingAll,
}

var amenityAliases = map[string]model.Amenity{
	"projector":        model.AmenityProjector,
	"screen":           model.AmenityProjector,
	"whiteboard":       model.AmenityWhiteboard,
	"white board":      model.AmenityWhiteboard,
	"board":            model.AmenityWhiteboard,
	"power outlets":    model.AmenityOutlets,
	"power outlet":     model.AmenityOutlets,
	"outlets":          model.AmenityOutlets,
	"outlet":           model.AmenityOutlets,
	"power":            model.AmenityOutlets,
	"air conditioning": model.AmenityAC,
	"air conditioner":  model.AmenityAC,
	"aircon":           model.AmenityAC,
	"ac":               model.AmenityAC,
	"a/c":              model.AmenityAC,
	"computers":        model.AmenityComputers,
	"computer":         model.AmenityComputers,
	"pcs":              model.AmenityComputers,
	"quiet zone":       model.AmenityQuietZone,
	"quiet":            model.AmenityQuietZone,
	"quietzone":        model.AmenityQuietZone,
}

func normalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// MatchBuilding maps a building name or alias to the canonical value.
// "All" maps to the BuildingAll sentinel.
func MatchBuilding(name string) (model.Building, bool) {
	term := normalizeTerm(name)
	if term == "" {
		return "", false
	}
	for _, b := range model.Buildings {
		if term == normalizeTerm(string(b)) {
			return b, true
		}
	}
	b, ok := buildingAliases[term]
	return b, ok
}

// MatchAmenity maps an amenity name or alias to the canonical value
func MatchAmenity(name string) (model.Amenity, bool) {
	term := normalizeTerm(name)
	if term == "" {
		return "", false
	}
	for _, a := range model.Amenities {
		if term == normalizeTerm(string(a)) {
			return a, true
		}
	}
	a, ok := amenityAliases[term]
	return a, ok
}
