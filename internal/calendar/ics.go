// Package calendar renders "add to calendar" downloads for events.
package calendar

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
)

const prodID = "-//Praise Tabernacle//Events//EN"

// ICS builds a single-VEVENT calendar for the event's occurrence at startAt.
func ICS(e *domain.Event, startAt time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	ev := cal.AddEvent(e.Slug + "@praisetabernacle")
	ev.SetDtStampTime(time.Now().UTC())
	ev.SetStartAt(startAt)
	ev.SetEndAt(startAt.Add(e.Duration()))
	ev.SetSummary(e.Title)
	if e.Location != "" {
		ev.SetLocation(e.Location)
	}
	if e.Description != "" {
		ev.SetDescription(e.Description)
	}

	return cal.Serialize()
}
