// Package availability computes free time slots within the daily working
// window and ranks the days of the week by how committed they are.
package availability

import (
	"sort"
	"time"

	"agendai/internal/dateutil"
	"agendai/internal/models"
)

const (
	// MinSlotMinutes is the smallest gap worth reporting. Shorter gaps are
	// unusably short and silently dropped.
	MinSlotMinutes = 30

	DefaultWorkStart = "09:00"
	DefaultWorkEnd   = "19:00"
)

type interval struct {
	start int // minutes from midnight
	end   int
}

// FreeSlots returns the unscheduled intervals of at least MinSlotMinutes
// within [workStart, workEnd] for one day's events. Only events with both a
// start and an end time count; overlapping events are merged before gap
// computation so an overlap never produces phantom slots.
func FreeSlots(dayEvents []models.Event, workStart, workEnd string) []models.FreeSlot {
	dayStart, err := dateutil.ParseClock(workStart)
	if err != nil {
		return nil
	}
	dayEnd, err := dateutil.ParseClock(workEnd)
	if err != nil {
		return nil
	}

	var busy []interval
	for _, e := range dayEvents {
		if !e.Timed() {
			continue
		}
		start, err := dateutil.ParseClock(e.Time)
		if err != nil {
			continue
		}
		end, err := dateutil.ParseClock(e.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, interval{start: start, end: end})
	}

	if len(busy) == 0 {
		return []models.FreeSlot{{
			Start:           dateutil.FormatClock(dayStart),
			End:             dateutil.FormatClock(dayEnd),
			DurationMinutes: dayEnd - dayStart,
		}}
	}

	sort.SliceStable(busy, func(i, j int) bool { return busy[i].start < busy[j].start })
	busy = mergeOverlaps(busy)

	var slots []models.FreeSlot
	cursor := dayStart
	for _, iv := range busy {
		if gap := iv.start - cursor; gap >= MinSlotMinutes {
			slots = append(slots, models.FreeSlot{
				Start:           dateutil.FormatClock(cursor),
				End:             dateutil.FormatClock(iv.start),
				DurationMinutes: gap,
			})
		}
		if iv.end > cursor {
			cursor = iv.end
		}
	}
	if gap := dayEnd - cursor; gap >= MinSlotMinutes {
		slots = append(slots, models.FreeSlot{
			Start:           dateutil.FormatClock(cursor),
			End:             dateutil.FormatClock(dayEnd),
			DurationMinutes: gap,
		})
	}
	return slots
}

// mergeOverlaps collapses a start-sorted interval list so that overlapping or
// touching events read as one busy block.
func mergeOverlaps(sorted []interval) []interval {
	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// FirstSlotAtLeast returns the earliest slot of at least the given duration.
func FirstSlotAtLeast(slots []models.FreeSlot, minutes int) (models.FreeSlot, bool) {
	for _, s := range slots {
		if s.DurationMinutes >= minutes {
			return s, true
		}
	}
	return models.FreeSlot{}, false
}

// DayStats summarizes one day of the analyzed week.
type DayStats struct {
	Date             string // YYYY-MM-DD
	Weekday          time.Weekday
	Events           []models.Event
	CommittedMinutes int
	IsFree           bool
}

// WeekAnalysis partitions events over the 7-day window starting at a given
// day. Days appear in chronological order.
type WeekAnalysis struct {
	Days []DayStats
}

// AnalyzeWeek builds the per-day statistics for [today, today+6].
func AnalyzeWeek(events []models.Event, today time.Time) WeekAnalysis {
	byDate := make(map[string][]models.Event)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	analysis := WeekAnalysis{Days: make([]DayStats, 0, 7)}
	for i := 0; i < 7; i++ {
		day := dateutil.AddDays(today, i)
		date := dateutil.FormatDate(day)
		dayEvents := byDate[date]

		committed := 0
		for _, e := range dayEvents {
			if e.Timed() {
				if m := dateutil.MinutesBetween(e.Time, e.EndTime); m > 0 {
					committed += m
				}
			}
		}

		analysis.Days = append(analysis.Days, DayStats{
			Date:             date,
			Weekday:          day.Weekday(),
			Events:           dayEvents,
			CommittedMinutes: committed,
			IsFree:           len(dayEvents) == 0,
		})
	}
	return analysis
}

// Rank returns the week's days ordered by committed minutes, ascending for
// the freest days first, descending for the busiest. Ties keep chronological
// order.
func (w WeekAnalysis) Rank(ascending bool) []DayStats {
	ranked := append([]DayStats(nil), w.Days...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ascending {
			return ranked[i].CommittedMinutes < ranked[j].CommittedMinutes
		}
		return ranked[i].CommittedMinutes > ranked[j].CommittedMinutes
	})
	return ranked
}

// TotalEvents counts every event in the analyzed window.
func (w WeekAnalysis) TotalEvents() int {
	n := 0
	for _, d := range w.Days {
		n += len(d.Events)
	}
	return n
}

// TotalMinutes sums the committed minutes of the analyzed window.
func (w WeekAnalysis) TotalMinutes() int {
	n := 0
	for _, d := range w.Days {
		n += d.CommittedMinutes
	}
	return n
}

// FreeDays counts the days with no events at all.
func (w WeekAnalysis) FreeDays() int {
	n := 0
	for _, d := range w.Days {
		if d.IsFree {
			n++
		}
	}
	return n
}
