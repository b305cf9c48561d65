package models

// ProposedSlot is one dated slot inside a routine proposal.
type ProposedSlot struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// PendingRoutine holds an unconfirmed batch of proposed events, waiting for the
// user's confirm/cancel reply on the next chat turn. At most one may exist per
// conversation; a new proposal or an explicit cancellation replaces it.
type PendingRoutine struct {
	Activity        string         `json:"activity"`
	Category        Category       `json:"category"`
	DurationMinutes int            `json:"duration_minutes"`
	Days            int            `json:"days"`
	Slots           []ProposedSlot `json:"slots"`
}

// FreeSlot is a derived interval of unscheduled time within the working window
// on a given day. It is computed on demand and never persisted.
type FreeSlot struct {
	Start           string `json:"start"` // HH:MM
	End             string `json:"end"`   // HH:MM
	DurationMinutes int    `json:"duration_minutes"`
}
