package domain

import (
	"time"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/recurrence"
)

// Event is a gathering from the site's events catalog. Exactly one of
// Recurrence or StartAt is meaningful for occurrence computation; an event
// may carry neither (undated announcements).
type Event struct {
	Slug        string           `json:"slug"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Capacity    *int             `json:"capacity,omitempty"`
	Recurrence  *recurrence.Rule `json:"-"`
	StartAt     *time.Time       `json:"start_at,omitempty"`

	// DurationMinutes sizes the calendar entry; 0 means the default.
	DurationMinutes int `json:"duration_minutes,omitempty"`
}

// NextOccurrence resolves the event's next occurrence strictly after now.
// Recurring events evaluate their rule; one-off events return their start
// while it is still in the future. The second result reports whether an
// upcoming occurrence exists at all.
func (e *Event) NextOccurrence(now time.Time) (time.Time, bool) {
	if e.Recurrence != nil {
		return e.Recurrence.Next(now), true
	}
	if e.StartAt != nil && e.StartAt.After(now) {
		return *e.StartAt, true
	}
	return time.Time{}, false
}

// Duration returns the calendar-entry length for the event.
func (e *Event) Duration() time.Duration {
	if e.DurationMinutes > 0 {
		return time.Duration(e.DurationMinutes) * time.Minute
	}
	return 90 * time.Minute
}
