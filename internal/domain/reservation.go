package domain

import (
	"strings"
	"time"
)

// Reservation is one attendee's seat claim against one event. At most one
// record exists per (EventSlug, Email) pair; Email is stored normalized and
// is part of the uniqueness key.
type Reservation struct {
	ID             string     `json:"id"`
	EventSlug      string     `json:"event_slug"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Seats          int        `json:"seats"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
}

// ReservationInput carries an upsert request into the store. Capacity, when
// set, is the event's seat ceiling; the store enforces it atomically with
// the write so concurrent submissions cannot book past it.
type ReservationInput struct {
	EventSlug string
	Name      string
	Email     string
	Seats     int
	Capacity  *int
}

// NormalizeEmail lowercases and trims an address for use as a store key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
