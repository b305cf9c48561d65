package models

// Preferences holds the per-user settings persisted alongside habits and
// events. Saving preferences must never clobber the rest of the user document.
type Preferences struct {
	WorkStart string    `json:"work_start"` // HH:MM
	WorkEnd   string    `json:"work_end"`   // HH:MM
	Reminders Reminders `json:"reminders"`  // defaults applied to new events
}

// DefaultPreferences returns the working window and reminder defaults used
// until the user changes them.
func DefaultPreferences() Preferences {
	return Preferences{
		WorkStart: "09:00",
		WorkEnd:   "19:00",
		Reminders: Reminders{Min15: true},
	}
}
