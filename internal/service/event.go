package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/service/ports"
)

// EventOverview is an event enriched with the data the pages render next to
// it: the upcoming occurrence and the availability label.
type EventOverview struct {
	Event        *domain.Event
	NextAt       *time.Time
	Availability string
	HasLabel     bool
	Reserved     int
}

type EventService struct {
	catalog ports.EventCatalog
	repo    ports.ReservationRepo
	loc     *time.Location
}

func NewEventService(catalog ports.EventCatalog, repo ports.ReservationRepo, loc *time.Location) *EventService {
	return &EventService{catalog: catalog, repo: repo, loc: loc}
}

// List returns overviews for the whole catalog in one batched seat query.
func (s *EventService) List(ctx context.Context, locale Locale) ([]EventOverview, error) {
	events := s.catalog.All()

	slugs := make([]string, 0, len(events))
	for _, e := range events {
		slugs = append(slugs, e.Slug)
	}
	sums, err := s.repo.SumReservedSeatsBatch(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("sum reserved seats: %w", err)
	}

	now := time.Now().In(s.loc)
	res := make([]EventOverview, 0, len(events))
	for _, e := range events {
		res = append(res, s.overview(e, sums[e.Slug], now, locale))
	}
	return res, nil
}

// Get returns the overview for one event.
func (s *EventService) Get(ctx context.Context, slug string, locale Locale) (*EventOverview, error) {
	e, err := s.catalog.Get(slug)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	reserved, err := s.repo.SumReservedSeats(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("sum reserved seats: %w", err)
	}

	ov := s.overview(e, reserved, time.Now().In(s.loc), locale)
	return &ov, nil
}

func (s *EventService) overview(e *domain.Event, reserved int, now time.Time, locale Locale) EventOverview {
	ov := EventOverview{Event: e, Reserved: reserved}
	if next, ok := e.NextOccurrence(now); ok {
		ov.NextAt = &next
	}
	ov.Availability, ov.HasLabel = AvailabilityLabel(e.Capacity, reserved, locale)
	return ov
}
