package service

import (
	"fmt"
	"sort"
	"time"

	"campusspot/internal/model"

	ics "github.com/arran4/golang-ical"
)

const calendarProductID = "-//CampusSpot//Room Timetable//EN"

// RoomCalendar renders the weekly timetable of room as an iCalendar feed.
// Slots are anchored on the week containing weekOf and repeat weekly.
func RoomCalendar(room model.Room, weekOf time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	monday := startOfWeek(weekOf)

	days := make([]int, 0, len(room.Schedule))
	for day := range room.Schedule {
		days = append(days, day)
	}
	sort.Ints(days)

	for _, day := range days {
		date := monday.AddDate(0, 0, (day+6)%7)
		for _, slot := range room.Schedule[day] {
			event := cal.AddEvent(fmt.Sprintf("%s-%d-%04d@campusspot", room.ID, day, slot.Start))
			event.SetDtStampTime(monday)
			event.SetStartAt(atTimeCode(date, slot.Start))
			event.SetEndAt(atTimeCode(date, slot.End))
			event.SetSummary(slotSummary(slot))
			event.SetLocation(fmt.Sprintf("%s, %s", room.Name, room.Building))
			event.AddRrule("FREQ=WEEKLY")
		}
	}

	return cal.Serialize()
}

func slotSummary(slot model.TimeSlot) string {
	if slot.Course == "" {
		return "Occupied"
	}
	return slot.Course
}

// startOfWeek returns midnight of the Monday on or before t, in t's location
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func atTimeCode(date time.Time, code int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, code/100, code%100, 0, 0, date.Location())
}
