package repository

import (
	"context"
	"fmt"
	"sort"

	"campusspot/internal/model"
)

// Mon-Fri: classes mostly 9-11 and 13-15
func standardSchedule() model.Schedule {
	return model.Schedule{
		1: {{Start: 900, End: 1100, Course: "CS101"}, {Start: 1300, End: 1430, Course: "MATH202"}},
		2: {{Start: 1000, End: 1200, Course: "PHY101"}},
		3: {{Start: 900, End: 1100, Course: "CS101"}, {Start: 1400, End: 1600, Course: "LAB3"}},
		4: {{Start: 1100, End: 1230, Course: "ENG303"}},
		5: {{Start: 900, End: 1000, Course: "SEMINAR"}},
	}
}

func busySchedule() model.Schedule {
	return model.Schedule{
		1: {{Start: 800, End: 1700, Course: "ALL DAY LAB"}},
		2: {{Start: 900, End: 1200, Course: "LAB"}, {Start: 1300, End: 1600, Course: "LAB"}},
		3: {{Start: 800, End: 1700, Course: "ALL DAY LAB"}},
		4: {{Start: 900, End: 1200, Course: "LAB"}},
		5: {},
	}
}

func emptySchedule() model.Schedule {
	return model.Schedule{1: {}, 2: {}, 3: {}, 4: {}, 5: {}}
}

func imageURL(n int) *string {
	u := fmt.Sprintf("https://picsum.photos/400/%d", 300+n)
	return &u
}

// SeedRooms returns the sample room catalog
func SeedRooms() []model.Room {
	freeMonday := standardSchedule()
	freeMonday[1] = []model.TimeSlot{}

	return []model.Room{
		{
			ID: "e101", Name: "E-101 Lecture Hall", Building: model.BuildingEngineering, Floor: 1, Capacity: 120,
			Amenities: model.AmenitySet{model.AmenityProjector, model.AmenityAC, model.AmenityOutlets},
			Schedule:  standardSchedule(), ImageURL: imageURL(0),
		},
		{
			ID: "e102", Name: "E-102 Small Class", Building: model.BuildingEngineering, Floor: 1, Capacity: 30,
			Amenities: model.AmenitySet{model.AmenityWhiteboard, model.AmenityOutlets},
			Schedule:  freeMonday, ImageURL: imageURL(1),
		},
		{
			ID: "e205", Name: "E-205 Computer Lab", Building: model.BuildingEngineering, Floor: 2, Capacity: 40,
			Amenities: model.AmenitySet{model.AmenityComputers, model.AmenityAC, model.AmenityProjector},
			Schedule:  busySchedule(), ImageURL: imageURL(2),
		},
		{
			ID: "s301", Name: "S-301 Chemistry Lab", Building: model.BuildingScience, Floor: 3, Capacity: 25,
			Amenities: model.AmenitySet{model.AmenityWhiteboard, model.AmenityAC},
			Schedule:  busySchedule(), ImageURL: imageURL(3),
		},
		{
			ID: "s105", Name: "S-105 Study Room", Building: model.BuildingScience, Floor: 1, Capacity: 10,
			Amenities: model.AmenitySet{model.AmenityQuietZone, model.AmenityOutlets, model.AmenityWhiteboard},
			Schedule:  emptySchedule(), ImageURL: imageURL(4),
		},
		{
			ID: "a202", Name: "A-202 Seminar Room", Building: model.BuildingArts, Floor: 2, Capacity: 50,
			Amenities: model.AmenitySet{model.AmenityProjector, model.AmenityAC},
			Schedule:  standardSchedule(), ImageURL: imageURL(5),
		},
		{
			ID: "l404", Name: "L-404 Group Pod", Building: model.BuildingLibrary, Floor: 4, Capacity: 6,
			Amenities: model.AmenitySet{model.AmenityQuietZone, model.AmenityOutlets},
			Schedule:  emptySchedule(), ImageURL: imageURL(6),
		},
		{
			ID: "l101", Name: "L-101 Main Hall", Building: model.BuildingLibrary, Floor: 1, Capacity: 200,
			Amenities: model.AmenitySet{model.AmenityAC, model.AmenityOutlets},
			Schedule:  busySchedule(), ImageURL: imageURL(7),
		},
	}
}

// SeedEvents returns the sample campus events
func SeedEvents() []model.UniEvent {
	return []model.UniEvent{
		{
			ID: "evt1", Title: "Tech Giants Career Fair", Category: model.CategoryCareer, Time: 1400,
			Location: "Main Auditorium", Description: "Meet recruiters from Google, Microsoft, and Amazon.",
		},
		{
			ID: "evt2", Title: "Varsity Basketball Finals", Category: model.CategorySports, Time: 1800,
			Location: "Sports Complex", Description: "Support our team against City University.",
		},
		{
			ID: "evt3", Title: "AI in 2025: Guest Lecture", Category: model.CategoryGuestLecture, Time: 1100,
			Location: "E-101 Lecture Hall", Description: "Dr. Smith discusses the future of Generative AI.",
		},
		{
			ID: "evt4", Title: "Freshers Ice Breaker", Category: model.CategorySocial, Time: 1900,
			Location: "Student Union Lawn", Description: "Music, food, and games for new students.",
		},
		{
			ID: "evt5", Title: "Thesis Submission Deadline", Category: model.CategoryAcademic, Time: 2359,
			Location: "Online Portal", Description: "Final deadline for senior year thesis submission.",
		},
	}
}

// SeedEventRepository serves SeedEvents ordered by time of day
type SeedEventRepository struct {
	events []model.UniEvent
}

// NewSeedEventRepository creates the sample event feed
func NewSeedEventRepository() *SeedEventRepository {
	events := SeedEvents()
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return &SeedEventRepository{events: events}
}

// ListEvents returns the events ordered by time of day
func (r *SeedEventRepository) ListEvents(ctx context.Context) ([]model.UniEvent, error) {
	return append([]model.UniEvent(nil), r.events...), nil
}

var _ EventRepository = (*SeedEventRepository)(nil)
