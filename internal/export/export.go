// Package export serializes the calendar to iCalendar files, so events can
// be imported into any external calendar application.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"agendai/internal/dateutil"
	"agendai/internal/models"
)

const prodID = "-//agendai//agendai//IT"

// WriteICS writes the events as a VCALENDAR. Timed events become regular
// DTSTART/DTEND entries, untimed events become all-day VEVENTs.
func WriteICS(w io.Writer, events []models.Event) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	now := time.Now()
	for _, e := range events {
		ve := cal.AddEvent(e.ID + "@agendai")
		ve.SetDtStampTime(now)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		ve.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(e.Category)))

		start, end, allDay, err := eventSpan(e)
		if err != nil {
			return fmt.Errorf("evento %s: %w", e.ID, err)
		}
		if allDay {
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(end)
		} else {
			ve.SetStartAt(start)
			ve.SetEndAt(end)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// WriteICSFile writes the calendar to path, creating or truncating the file.
func WriteICSFile(path string, events []models.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := WriteICS(f, events); err != nil {
		return err
	}
	return f.Close()
}

// eventSpan resolves the DTSTART/DTEND pair. Timed events without an end
// get a one hour default; all-day events span to the next day per RFC 5545.
func eventSpan(e models.Event) (start, end time.Time, allDay bool, err error) {
	date, err := dateutil.ParseDate(e.Date)
	if err != nil {
		return start, end, false, err
	}

	if e.Time == "" {
		return date, date.AddDate(0, 0, 1), true, nil
	}

	startMin, err := dateutil.ParseClock(e.Time)
	if err != nil {
		return start, end, false, err
	}
	start = date.Add(time.Duration(startMin) * time.Minute)

	if e.EndTime == "" {
		return start, start.Add(time.Hour), false, nil
	}
	endMin, err := dateutil.ParseClock(e.EndTime)
	if err != nil {
		return start, end, false, err
	}
	end = date.Add(time.Duration(endMin) * time.Minute)
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end, false, nil
}
