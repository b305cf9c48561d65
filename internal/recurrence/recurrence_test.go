package recurrence

import (
	"strings"
	"testing"
	"time"

	"agendai/internal/models"
)

func weekHabit() models.Habit {
	return models.Habit{
		ID:     "habit-1",
		Title:  "palestra",
		Active: true,
		Weekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		StartTime: "18:00",
		EndTime:   "19:30",
		StartDate: "2025-03-10", // a Monday
		EndDate:   "2025-03-16", // the following Sunday
		Category:  models.CategorySport,
	}
}

func TestExpand_BusinessWeekCoverage(t *testing.T) {
	events, err := Expand(weekHabit())
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	for _, e := range events {
		day, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			t.Fatalf("bad event date %q: %v", e.Date, err)
		}
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			t.Errorf("event on weekend date %s", e.Date)
		}
		if !e.FromHabit || e.HabitID != "habit-1" {
			t.Errorf("event %s not marked as habit-derived", e.ID)
		}
		if e.Time != "18:00" || e.EndTime != "19:30" {
			t.Errorf("event %s times = %s-%s, want 18:00-19:30", e.ID, e.Time, e.EndTime)
		}
	}
}

func TestExpand_Idempotent(t *testing.T) {
	h := weekHabit()

	first, err := Expand(h)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	second, err := Expand(h)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expansions differ in size: %d vs %d", len(first), len(second))
	}
	ids := make(map[string]bool)
	for _, e := range first {
		if ids[e.ID] {
			t.Fatalf("duplicate event id %s", e.ID)
		}
		ids[e.ID] = true
	}
	for _, e := range second {
		if !ids[e.ID] {
			t.Errorf("second expansion produced new id %s", e.ID)
		}
	}
}

func TestExpand_InactiveIsEmpty(t *testing.T) {
	h := weekHabit()
	h.Active = false

	events, err := Expand(h)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("inactive habit expanded to %d events, want 0", len(events))
	}
}

func TestExpand_MissingDateBoundIsEmpty(t *testing.T) {
	h := weekHabit()
	h.EndDate = ""

	events, err := Expand(h)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("habit without end date expanded to %d events, want 0", len(events))
	}
}

func TestExpand_PathologicalRangeFails(t *testing.T) {
	h := weekHabit()
	h.EndDate = "2055-03-10"

	_, err := Expand(h)
	if err == nil {
		t.Fatal("expected error for multi-decade range")
	}
	if !strings.Contains(err.Error(), "troppo lungo") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDerive_ReplacesHabitEventsKeepsManual(t *testing.T) {
	h := weekHabit()
	manual := models.Event{ID: "manual-1", Title: "dentista", Date: "2025-03-12", Category: models.CategoryPersonal}
	stale := models.Event{ID: "old-habit-9", Title: "vecchia", Date: "2025-03-11", FromHabit: true, HabitID: "habit-9"}

	events, err := Derive([]models.Habit{h}, []models.Event{manual, stale})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	foundManual := false
	for _, e := range events {
		if e.ID == "old-habit-9" {
			t.Error("stale habit event survived recomputation")
		}
		if e.ID == "manual-1" {
			foundManual = true
		}
	}
	if !foundManual {
		t.Error("manual event was dropped by recomputation")
	}
	if len(events) != 6 { // 5 habit events + 1 manual
		t.Errorf("got %d events, want 6", len(events))
	}
}

func TestDerive_DeletedHabitCascades(t *testing.T) {
	h := weekHabit()
	events, err := Derive([]models.Habit{h}, nil)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	// Habit removed: a fresh derivation must leave nothing behind.
	events, err = Derive(nil, events)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after habit deletion, want 0", len(events))
	}
}
