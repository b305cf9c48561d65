package dateutil

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"7:30", 450, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(540); got != "09:00" {
		t.Errorf("FormatClock(540) = %q", got)
	}
	if got := FormatClock(1439); got != "23:59" {
		t.Errorf("FormatClock(1439) = %q", got)
	}
}

func TestMinutesBetween(t *testing.T) {
	if got := MinutesBetween("09:00", "10:30"); got != 90 {
		t.Errorf("MinutesBetween = %d, want 90", got)
	}
	if got := MinutesBetween("10:30", "09:00"); got != -90 {
		t.Errorf("inverted MinutesBetween = %d, want -90", got)
	}
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if d.Weekday() != time.Monday {
		t.Errorf("2025-03-10 should be a Monday, got %s", d.Weekday())
	}
	if got := FormatDate(d); got != "2025-03-10" {
		t.Errorf("round trip = %q", got)
	}
	if got := FormatDate(AddDays(d, 7)); got != "2025-03-17" {
		t.Errorf("AddDays = %q", got)
	}
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(time.Monday); got != "lunedì" {
		t.Errorf("WeekdayName(Monday) = %q", got)
	}
	if got := WeekdayName(time.Sunday); got != "domenica" {
		t.Errorf("WeekdayName(Sunday) = %q", got)
	}
}
