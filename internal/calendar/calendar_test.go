package calendar

import (
	"errors"
	"testing"
	"time"

	"agendai/internal/assistant"
	"agendai/internal/models"
	"agendai/internal/parser"
)

func allWeekdays() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

func TestAddHabit_DerivesEventsImmediately(t *testing.T) {
	svc := New()

	habit, err := svc.AddHabit("palestra dal lunedì al venerdì dalle 18:00 alle 19:30 dal 10/03/25 al 16/03/25")
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	events := svc.Events()
	if len(events) != 5 {
		t.Fatalf("got %d events after habit add, want 5", len(events))
	}
	for _, e := range events {
		if e.HabitID != habit.ID {
			t.Errorf("event %s not linked to habit", e.ID)
		}
	}
}

func TestAddHabit_RejectsTimeless(t *testing.T) {
	svc := New()
	_, err := svc.AddHabit("palestra dal lunedì al venerdì")

	var verr *parser.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for missing time range, got %v", err)
	}
	if len(svc.Habits()) != 0 {
		t.Error("invalid habit was stored")
	}
}

func TestToggleHabit_RemovesAndRestoresEvents(t *testing.T) {
	svc := New()
	habit, err := svc.AddHabit("studio tutti i giorni dalle 9 alle 11 dal 10/03/25 al 12/03/25")
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	if _, err := svc.ToggleHabit(habit.ID); err != nil {
		t.Fatalf("ToggleHabit failed: %v", err)
	}
	if n := len(svc.Events()); n != 0 {
		t.Errorf("deactivated habit still has %d events", n)
	}

	if _, err := svc.ToggleHabit(habit.ID); err != nil {
		t.Fatalf("ToggleHabit failed: %v", err)
	}
	if n := len(svc.Events()); n != 3 {
		t.Errorf("reactivated habit has %d events, want 3", n)
	}
}

func TestDeleteHabit_Cascades(t *testing.T) {
	svc := New()
	habit, err := svc.AddHabit("nuoto tutti i giorni dalle 7 alle 8 dal 10/03/25 al 12/03/25")
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	svc.AddEvent(models.Event{ID: "m1", Title: "cena", Date: "2025-03-11"})

	if err := svc.DeleteHabit(habit.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	events := svc.Events()
	if len(events) != 1 || events[0].ID != "m1" {
		t.Errorf("cascade delete left %+v, want only the manual event", events)
	}
}

func TestRemoveEvents_SkipsHabitDerived(t *testing.T) {
	svc := New()
	if _, err := svc.AddHabit("yoga tutti i giorni dalle 7 alle 8 dal 10/03/25 al 10/03/25"); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	svc.AddEvent(models.Event{ID: "m1", Title: "cena", Date: "2025-03-11"})

	habitEventID := ""
	for _, e := range svc.Events() {
		if e.FromHabit {
			habitEventID = e.ID
		}
	}

	removed := svc.RemoveEvents([]string{"m1", habitEventID})
	if removed != 1 {
		t.Errorf("removed %d events, want 1 (manual only)", removed)
	}
	if len(svc.Events()) != 1 {
		t.Errorf("habit-derived event was removed")
	}
}

func TestApply_AssistantMutation(t *testing.T) {
	svc := New()
	svc.Apply(&assistant.Mutation{Append: []models.Event{
		{ID: "a1", Title: "riunione", Date: "2025-03-11", Category: models.CategoryWork},
	}})

	if len(svc.Events()) != 1 {
		t.Fatalf("append mutation not applied")
	}

	svc.Apply(&assistant.Mutation{RemoveIDs: []string{"a1"}})
	if len(svc.Events()) != 0 {
		t.Error("remove mutation not applied")
	}
}

func TestWeeklyCategoryHours(t *testing.T) {
	svc := New()
	svc.AddEvent(models.Event{ID: "1", Title: "lavoro", Category: models.CategoryWork, Date: "2025-03-10", Time: "09:00", EndTime: "12:30"})
	svc.AddEvent(models.Event{ID: "2", Title: "corsa", Category: models.CategorySport, Date: "2025-03-10", Time: "18:00", EndTime: "19:00"})
	svc.AddEvent(models.Event{ID: "3", Title: "nota", Category: models.CategoryPersonal, Date: "2025-03-10"})

	hours := svc.WeeklyCategoryHours()
	if hours[models.CategoryWork] != 3.5 {
		t.Errorf("work hours = %v, want 3.5", hours[models.CategoryWork])
	}
	if hours[models.CategorySport] != 1 {
		t.Errorf("sport hours = %v, want 1", hours[models.CategorySport])
	}
	if _, ok := hours[models.CategoryPersonal]; ok {
		t.Error("untimed event contributed hours")
	}
}

func TestReplace_RederivesFromPersistedState(t *testing.T) {
	svc := New()
	habit := models.Habit{
		ID: "h1", Title: "palestra", Active: true,
		Weekdays:  allWeekdays(),
		StartDate: "2025-03-10", EndDate: "2025-03-11",
		StartTime: "18:00", EndTime: "19:00",
		Category: models.CategorySport,
	}
	manual := []models.Event{{ID: "m1", Title: "cena", Date: "2025-03-11"}}

	if err := svc.Replace([]models.Habit{habit}, manual, models.DefaultPreferences()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if len(svc.Events()) != 3 { // 2 habit days + 1 manual
		t.Errorf("got %d events after Replace, want 3", len(svc.Events()))
	}
}
