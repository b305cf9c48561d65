// Package assistant maps free-text Italian chat messages onto calendar
// queries and mutations. Classification is an ordered keyword cascade: the
// first matching intent wins and later rules never fire. Every input produces
// a reply; malformed text degrades to a usage hint, never a failure.
package assistant

import (
	"time"

	"agendai/internal/availability"
	"agendai/internal/models"
	"agendai/internal/parser"
)

// Context is the snapshot the interpreter reasons over. It is read-only: any
// change comes back as an explicit Mutation the caller applies.
type Context struct {
	Events  []models.Event
	Habits  []models.Habit
	Pending *models.PendingRoutine

	// Now anchors relative dates; the zero value means time.Now().
	Now time.Time
	// WorkStart/WorkEnd bound the free-slot window; empty means the defaults.
	WorkStart string
	WorkEnd   string
	// Reminders are the lead-time defaults attached to events the assistant
	// creates.
	Reminders models.Reminders
}

func (c Context) now() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

func (c Context) window() (string, string) {
	start, end := c.WorkStart, c.WorkEnd
	if start == "" {
		start = availability.DefaultWorkStart
	}
	if end == "" {
		end = availability.DefaultWorkEnd
	}
	return start, end
}

// eventsOn returns the events dated on the given day.
func (c Context) eventsOn(date string) []models.Event {
	var out []models.Event
	for _, e := range c.Events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// manualEvents returns the events not derived from habits.
func (c Context) manualEvents() []models.Event {
	var out []models.Event
	for _, e := range c.Events {
		if !e.FromHabit {
			out = append(out, e)
		}
	}
	return out
}

// Mutation describes a calendar change for the caller to apply. Exactly one
// of Append/RemoveIDs is populated.
type Mutation struct {
	Append    []models.Event
	RemoveIDs []string
}

// Result is one chat turn: the reply text, an optional mutation, and the
// pending-routine state to thread into the next turn (nil clears it).
type Result struct {
	Reply    string
	Mutation *Mutation
	Pending  *models.PendingRoutine
}

// Interpret classifies the message and runs the matching intent.
func Interpret(message string, ctx Context) Result {
	norm := parser.Normalize(message)

	type intent func(string, string, Context) (Result, bool)
	cascade := []intent{
		addEventIntent,
		routineProposalIntent,
		routineConfirmIntent,
		deleteIntent,
		dayQueryIntent,
		slotQueryIntent,
		weekSummaryIntent,
		searchIntent,
	}
	for _, try := range cascade {
		if res, ok := try(norm, message, ctx); ok {
			return res
		}
	}
	return Result{Reply: helpReply, Pending: ctx.Pending}
}
