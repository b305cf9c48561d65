// Package notify fires event reminders. A gocron job wakes up every minute,
// scans the calendar for events whose lead time has just been reached, and
// hands each one to the configured Notify callback.
package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"agendai/internal/dateutil"
	"agendai/internal/models"
)

// dayBeforeAt is when the 1-day lead fires on the previous day.
const dayBeforeAt = "09:00"

// Reminder is one due notification.
type Reminder struct {
	Event models.Event
	Lead  string // "15min", "1hour" or "1day"
}

func (r Reminder) String() string {
	when := r.Event.Date
	if r.Event.Time != "" {
		when += " " + r.Event.Time
	}
	switch r.Lead {
	case "15min":
		return fmt.Sprintf("Promemoria: \"%s\" inizia tra 15 minuti (%s)", r.Event.Title, when)
	case "1hour":
		return fmt.Sprintf("Promemoria: \"%s\" inizia tra un'ora (%s)", r.Event.Title, when)
	default:
		return fmt.Sprintf("Promemoria: \"%s\" è domani (%s)", r.Event.Title, when)
	}
}

// EventSource supplies the current event list on each tick, so reminders
// follow calendar edits made while the dispatcher runs.
type EventSource func() []models.Event

// Notify delivers one reminder to the user.
type Notify func(Reminder)

type Dispatcher struct {
	events    EventSource
	defaults  models.Reminders
	notify    Notify
	scheduler gocron.Scheduler
	now       func() time.Time
	sent      map[string]bool
}

func NewDispatcher(events EventSource, defaults models.Reminders, notify Notify) (*Dispatcher, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	d := &Dispatcher{
		events:    events,
		defaults:  defaults,
		notify:    notify,
		scheduler: s,
		now:       time.Now,
		sent:      make(map[string]bool),
	}

	_, err = s.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(d.tick),
	)
	if err != nil {
		return nil, fmt.Errorf("registering reminder job: %w", err)
	}

	return d, nil
}

func (d *Dispatcher) Start() {
	d.scheduler.Start()
}

func (d *Dispatcher) Stop() {
	if err := d.scheduler.Shutdown(); err != nil {
		log.Println("errore di arresto del promemoria:", err)
	}
}

func (d *Dispatcher) tick() {
	for _, r := range d.Due(d.now()) {
		d.notify(r)
	}
}

// Due returns the reminders that are due at now and have not fired yet.
// Each (event, lead) pair fires at most once per dispatcher lifetime.
func (d *Dispatcher) Due(now time.Time) []Reminder {
	var due []Reminder
	for _, e := range d.events() {
		leads := e.Reminders
		if !leads.Any() {
			leads = d.defaults
		}
		if leads.Min15 && d.leadDue(e, now, 15*time.Minute) {
			due = d.collect(due, e, "15min")
		}
		if leads.Hour1 && d.leadDue(e, now, time.Hour) {
			due = d.collect(due, e, "1hour")
		}
		if leads.Day1 && d.dayBeforeDue(e, now) {
			due = d.collect(due, e, "1day")
		}
	}
	return due
}

func (d *Dispatcher) collect(due []Reminder, e models.Event, lead string) []Reminder {
	key := e.ID + "|" + lead
	if d.sent[key] {
		return due
	}
	d.sent[key] = true
	return append(due, Reminder{Event: e, Lead: lead})
}

// leadDue reports whether the event starts exactly lead from the current
// minute. Events without a start time have no clock to count down to; a
// missing end time does not matter here.
func (d *Dispatcher) leadDue(e models.Event, now time.Time, lead time.Duration) bool {
	if e.Time == "" {
		return false
	}
	start, err := eventStart(e)
	if err != nil {
		return false
	}
	return now.Truncate(time.Minute).Equal(start.Add(-lead))
}

// dayBeforeDue fires the long lead at a fixed morning hour on the previous
// day, so untimed events still get a reminder.
func (d *Dispatcher) dayBeforeDue(e models.Event, now time.Time) bool {
	date, err := dateutil.ParseDate(e.Date)
	if err != nil {
		return false
	}
	prior := date.AddDate(0, 0, -1)
	return dateutil.FormatDate(now) == dateutil.FormatDate(prior) &&
		now.Format("15:04") == dayBeforeAt
}

func eventStart(e models.Event) (time.Time, error) {
	return time.ParseInLocation(dateutil.DateLayout+" 15:04", e.Date+" "+e.Time, time.Local)
}
