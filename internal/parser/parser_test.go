package parser

import (
	"errors"
	"testing"
	"time"

	"agendai/internal/models"
)

var testNow = time.Date(2025, time.March, 10, 15, 0, 0, 0, time.Local) // a Monday

func wantWeekdays(t *testing.T, got []time.Weekday, want ...time.Weekday) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("weekdays = %v, want %v", got, want)
	}
	set := make(map[time.Weekday]bool)
	for _, d := range got {
		set[d] = true
	}
	for _, d := range want {
		if !set[d] {
			t.Fatalf("weekdays = %v, missing %v", got, d)
		}
	}
}

func TestParse_GymBusinessWeek(t *testing.T) {
	h, err := ParseAt("palestra dal lunedì al venerdì dalle 18:00 alle 19:30", testNow)
	if err != nil {
		t.Fatalf("ParseAt failed: %v", err)
	}

	if h.Title != "palestra" {
		t.Errorf("Title = %q, want %q", h.Title, "palestra")
	}
	wantWeekdays(t, h.Weekdays, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	if h.StartTime != "18:00" || h.EndTime != "19:30" {
		t.Errorf("time range = %s-%s, want 18:00-19:30", h.StartTime, h.EndTime)
	}
	if h.Category != models.CategorySport {
		t.Errorf("Category = %s, want sport", h.Category)
	}
	if !h.Active {
		t.Error("new habit should be active")
	}
}

func TestParse_EveryDay(t *testing.T) {
	h, err := ParseAt("studio tutti i giorni dalle 18:00 alle 20:00", testNow)
	if err != nil {
		t.Fatalf("ParseAt failed: %v", err)
	}

	if len(h.Weekdays) != 7 {
		t.Errorf("Weekdays = %v, want all 7", h.Weekdays)
	}
	if h.Category != models.CategoryStudy {
		t.Errorf("Category = %s, want studio", h.Category)
	}
}

func TestParse_ExplicitDateRange(t *testing.T) {
	h, err := ParseAt("corso dal 15/01 al 30/06 dalle 14:00 alle 16:00", testNow)
	if err != nil {
		t.Fatalf("ParseAt failed: %v", err)
	}

	if h.StartDate != "2025-01-15" {
		t.Errorf("StartDate = %q, want 2025-01-15", h.StartDate)
	}
	if h.EndDate != "2025-06-30" {
		t.Errorf("EndDate = %q, want 2025-06-30", h.EndDate)
	}
}

func TestParse_InvertedDateRangeFails(t *testing.T) {
	_, err := ParseAt("corso dal 30/06 al 15/01 dalle 14:00 alle 16:00", testNow)
	if err == nil {
		t.Fatal("expected date inversion error, got nil")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
}

func TestParse_UntilDate(t *testing.T) {
	h, err := ParseAt("nuoto il martedì fino al 30/09 dalle 7 alle 8", testNow)
	if err != nil {
		t.Fatalf("ParseAt failed: %v", err)
	}

	if h.StartDate != "2025-03-10" {
		t.Errorf("StartDate = %q, want today (2025-03-10)", h.StartDate)
	}
	if h.EndDate != "2025-09-30" {
		t.Errorf("EndDate = %q, want 2025-09-30", h.EndDate)
	}
	wantWeekdays(t, h.Weekdays, time.Tuesday)
	if h.StartTime != "07:00" || h.EndTime != "08:00" {
		t.Errorf("time range = %s-%s, want 07:00-08:00", h.StartTime, h.EndTime)
	}
}

func TestParse_DefaultDateRange(t *testing.T) {
	h, err := ParseAt("yoga tutti i giorni dalle 8 alle 9", testNow)
	if err != nil {
		t.Fatalf("ParseAt failed: %v", err)
	}
	if h.StartDate != "2025-03-10" || h.EndDate != "2025-12-31" {
		t.Errorf("date range = %s..%s, want 2025-03-10..2025-12-31", h.StartDate, h.EndDate)
	}
}

func TestParse_TwoDigitYear(t *testing.T) {
	h, err := ParseAt("corso dal 1/2/26 al 28-02-26 dalle 10 alle 12", testNow)
	if err != nil {
		t.Fatalf("ParseAt failed: %v", err)
	}
	if h.StartDate != "2026-02-01" || h.EndDate != "2026-02-28" {
		t.Errorf("date range = %s..%s, want 2026-02-01..2026-02-28", h.StartDate, h.EndDate)
	}
}

func TestExtractWeekdays_WrappingRange(t *testing.T) {
	days := extractWeekdays("allenamento dal venerdi al lunedi")
	wantWeekdays(t, days, time.Friday, time.Saturday, time.Sunday, time.Monday)
}

func TestExtractWeekdays_ScatteredNames(t *testing.T) {
	days := extractWeekdays("tennis lunedi e giovedi e ancora lunedi")
	wantWeekdays(t, days, time.Monday, time.Thursday)
}

func TestExtractWeekdays_DefaultBusinessWeek(t *testing.T) {
	days := extractWeekdays("qualcosa senza giorni")
	wantWeekdays(t, days, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
}

func TestExtractTitle_NoBoundaryFallsBackToFirstToken(t *testing.T) {
	text := "piscina ogni tanto"
	if got := extractTitle(text, Normalize(text)); got != "piscina" {
		t.Errorf("title = %q, want %q", got, "piscina")
	}
}

func TestExtractTimeRange_Missing(t *testing.T) {
	start, end := extractTimeRange("camminata tutti i giorni")
	if start != "" || end != "" {
		t.Errorf("time range = %q-%q, want empty", start, end)
	}
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		text string
		want models.Category
	}{
		{"palestra la sera", models.CategorySport},
		{"lezione di matematica", models.CategoryStudy},
		{"riunione in ufficio", models.CategoryWork},
		{"cena con amici", models.CategoryPersonal},
		{"studio per il lavoro", models.CategoryStudy}, // sport -> studio -> lavoro priority
	}
	for _, tt := range tests {
		if got := InferCategory(tt.text); got != tt.want {
			t.Errorf("InferCategory(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestNormalize_PreservesRuneOffsets(t *testing.T) {
	text := "Università dalle 9 alle 11"
	norm := Normalize(text)
	if len([]rune(norm)) != len([]rune(text)) {
		t.Fatalf("normalization changed rune count: %q -> %q", text, norm)
	}
	if norm != "universita dalle 9 alle 11" {
		t.Errorf("Normalize = %q", norm)
	}
}
