package availability

import (
	"testing"
	"time"

	"agendai/internal/models"
)

func timed(date, start, end string) models.Event {
	return models.Event{ID: date + "-" + start, Title: "x", Date: date, Time: start, EndTime: end}
}

func TestFreeSlots_EmptyDayIsWholeWindow(t *testing.T) {
	slots := FreeSlots(nil, DefaultWorkStart, DefaultWorkEnd)

	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	want := models.FreeSlot{Start: "09:00", End: "19:00", DurationMinutes: 600}
	if slots[0] != want {
		t.Errorf("slot = %+v, want %+v", slots[0], want)
	}
}

func TestFreeSlots_ShortGapDropped(t *testing.T) {
	events := []models.Event{
		timed("2025-03-10", "09:00", "10:00"),
		timed("2025-03-10", "10:20", "11:00"),
	}
	slots := FreeSlots(events, DefaultWorkStart, DefaultWorkEnd)

	for _, s := range slots {
		if s.Start == "10:00" {
			t.Errorf("20-minute gap reported as slot: %+v", s)
		}
	}
	// Only the tail of the day remains.
	if len(slots) != 1 || slots[0].Start != "11:00" || slots[0].End != "19:00" {
		t.Errorf("slots = %+v, want single 11:00-19:00", slots)
	}
}

func TestFreeSlots_ThirtyMinuteGapKept(t *testing.T) {
	events := []models.Event{
		timed("2025-03-10", "09:00", "10:00"),
		timed("2025-03-10", "10:30", "11:00"),
	}
	slots := FreeSlots(events, DefaultWorkStart, DefaultWorkEnd)

	found := false
	for _, s := range slots {
		if s.Start == "10:00" && s.End == "10:30" && s.DurationMinutes == 30 {
			found = true
		}
	}
	if !found {
		t.Errorf("30-minute gap missing from %+v", slots)
	}
}

func TestFreeSlots_GapBeforeFirstEvent(t *testing.T) {
	events := []models.Event{timed("2025-03-10", "11:00", "12:00")}
	slots := FreeSlots(events, DefaultWorkStart, DefaultWorkEnd)

	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2: %+v", len(slots), slots)
	}
	if slots[0].Start != "09:00" || slots[0].End != "11:00" || slots[0].DurationMinutes != 120 {
		t.Errorf("leading slot = %+v", slots[0])
	}
	if slots[1].Start != "12:00" || slots[1].End != "19:00" {
		t.Errorf("trailing slot = %+v", slots[1])
	}
}

func TestFreeSlots_UntimedEventsIgnored(t *testing.T) {
	events := []models.Event{
		{ID: "all-day", Title: "compleanno", Date: "2025-03-10"},
	}
	slots := FreeSlots(events, DefaultWorkStart, DefaultWorkEnd)
	if len(slots) != 1 || slots[0].DurationMinutes != 600 {
		t.Errorf("untimed event affected slots: %+v", slots)
	}
}

func TestFreeSlots_OverlappingEventsMerged(t *testing.T) {
	events := []models.Event{
		timed("2025-03-10", "09:00", "11:00"),
		timed("2025-03-10", "10:00", "10:30"), // contained in the first
		timed("2025-03-10", "10:45", "12:00"), // overlaps the first
	}
	slots := FreeSlots(events, DefaultWorkStart, DefaultWorkEnd)

	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1: %+v", len(slots), slots)
	}
	if slots[0].Start != "12:00" || slots[0].End != "19:00" {
		t.Errorf("slot = %+v, want 12:00-19:00", slots[0])
	}
}

func TestAnalyzeWeek(t *testing.T) {
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local) // Monday
	events := []models.Event{
		timed("2025-03-10", "09:00", "12:00"), // Monday, 180 min
		timed("2025-03-11", "09:00", "10:00"), // Tuesday, 60 min
		{ID: "note", Title: "promemoria", Date: "2025-03-11"},
		timed("2025-03-20", "09:00", "10:00"), // outside the window
	}

	week := AnalyzeWeek(events, today)

	if len(week.Days) != 7 {
		t.Fatalf("got %d days, want 7", len(week.Days))
	}
	if week.Days[0].CommittedMinutes != 180 {
		t.Errorf("Monday committed = %d, want 180", week.Days[0].CommittedMinutes)
	}
	if week.Days[1].CommittedMinutes != 60 || len(week.Days[1].Events) != 2 {
		t.Errorf("Tuesday = %+v", week.Days[1])
	}
	if week.TotalEvents() != 3 {
		t.Errorf("TotalEvents = %d, want 3", week.TotalEvents())
	}
	if week.FreeDays() != 5 {
		t.Errorf("FreeDays = %d, want 5", week.FreeDays())
	}
	if week.TotalMinutes() != 240 {
		t.Errorf("TotalMinutes = %d, want 240", week.TotalMinutes())
	}
}

func TestRank(t *testing.T) {
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	events := []models.Event{
		timed("2025-03-10", "09:00", "12:00"),
		timed("2025-03-12", "09:00", "10:00"),
	}
	week := AnalyzeWeek(events, today)

	freest := week.Rank(true)
	if freest[0].CommittedMinutes != 0 {
		t.Errorf("freest day has %d committed minutes", freest[0].CommittedMinutes)
	}
	busiest := week.Rank(false)
	if busiest[0].Date != "2025-03-10" {
		t.Errorf("busiest day = %s, want 2025-03-10", busiest[0].Date)
	}
	// Ties keep chronological order.
	if freest[0].Date != "2025-03-11" {
		t.Errorf("first free day = %s, want 2025-03-11", freest[0].Date)
	}
}

func TestFirstSlotAtLeast(t *testing.T) {
	slots := []models.FreeSlot{
		{Start: "09:00", End: "09:45", DurationMinutes: 45},
		{Start: "14:00", End: "16:00", DurationMinutes: 120},
	}

	slot, ok := FirstSlotAtLeast(slots, 60)
	if !ok || slot.Start != "14:00" {
		t.Errorf("got %+v ok=%v, want 14:00 slot", slot, ok)
	}
	if _, ok := FirstSlotAtLeast(slots, 180); ok {
		t.Error("found slot longer than any available")
	}
}
