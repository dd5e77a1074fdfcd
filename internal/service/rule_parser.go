package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"campusspot/internal/model"
)

// First integer, optionally followed by a people-ish word. The word is
// optional, so any bare number matches (course codes like CS101 included).
var capacityRe = regexp.MustCompile(`(\d+)\s*(?:people|students|seats|pax|person|capacity)?`)

type buildingRule struct {
	keywords []string
	building model.Building
	fragment string
}

// Checked in order; first match wins
var buildingRules = []buildingRule{
	{keywords: []string{"engineering", "eng block"}, building: model.BuildingEngineering, fragment: "Engineering Building"},
	{keywords: []string{"science", "lab block"}, building: model.BuildingScience, fragment: "Science Center"},
	{keywords: []string{"arts", "humanities"}, building: model.BuildingArts, fragment: "Arts & Humanities"},
	{keywords: []string{"library", "lib"}, building: model.BuildingLibrary, fragment: "Central Library"},
}

type amenityRule struct {
	keywords []string
	amenity  model.Amenity
}

// Each rule fires independently
var amenityRules = []amenityRule{
	{keywords: []string{"projector", "screen", "presentation"}, amenity: model.AmenityProjector},
	{keywords: []string{"whiteboard", "board", "marker"}, amenity: model.AmenityWhiteboard},
	{keywords: []string{"outlet", "plug", "power", "charging"}, amenity: model.AmenityOutlets},
	{keywords: []string{"ac", "air", "cool", "conditioning"}, amenity: model.AmenityAC},
	{keywords: []string{"computer", "pc", "desktop", "mac"}, amenity: model.AmenityComputers},
	{keywords: []string{"quiet", "silent", "study", "focus"}, amenity: model.AmenityQuietZone},
}

var scheduleKeywords = []string{"schedule", "tomorrow", "list", "later"}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ParseQueryOffline extracts filters from free text with keyword rules.
// It is pure and deterministic. Keywords match as substrings, so short ones
// ("ac", "lib", "pc") also fire inside longer words.
func ParseQueryOffline(text string) *model.AIAnalysisResult {
	q := strings.ToLower(text)

	filters := model.FilterPatch{Amenities: []model.Amenity{}}
	var parts []string

	if m := capacityRe.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			filters.MinCapacity = &n
			parts = append(parts, fmt.Sprintf("capacity for %d", n))
		}
	}

	for _, rule := range buildingRules {
		if containsAny(q, rule.keywords) {
			b := rule.building
			filters.Building = &b
			parts = append(parts, rule.fragment)
			break
		}
	}

	for _, rule := range amenityRules {
		if containsAny(q, rule.keywords) {
			filters.Amenities = append(filters.Amenities, rule.amenity)
			parts = append(parts, string(rule.amenity))
		}
	}

	onlyNow := !containsAny(q, scheduleKeywords)
	filters.OnlyAvailableNow = &onlyNow
	if onlyNow {
		parts = append(parts, "checking current availability")
	} else {
		parts = append(parts, "checking full schedule")
	}

	// The time-scope fragment is always present, so the second branch is
	// unreachable; kept so the message set matches the client's.
	reasoning := "Offline Mode: Showing all rooms (no specific criteria identified)."
	if len(parts) > 0 {
		reasoning = fmt.Sprintf("Offline Mode: Identified requirements for %s.", strings.Join(parts, ", "))
	}

	return &model.AIAnalysisResult{Filters: filters, Reasoning: reasoning}
}

// LocalRuleParser is the Suggester backed by ParseQueryOffline
type LocalRuleParser struct{}

// NewLocalRuleParser creates the rule-based suggester
func NewLocalRuleParser() *LocalRuleParser {
	return &LocalRuleParser{}
}

// Suggest parses text with the keyword rules
func (p *LocalRuleParser) Suggest(ctx context.Context, text string) *model.AIAnalysisResult {
	return ParseQueryOffline(text)
}

// Name identifies the suggester in logs and responses
func (p *LocalRuleParser) Name() string {
	return "offline"
}
