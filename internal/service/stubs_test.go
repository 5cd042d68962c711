package service

import (
	"context"
	"errors"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
)

// stubCatalog and stubRepo are hand-rolled port fakes for service tests.

type stubCatalog struct {
	events []*domain.Event
}

func (c *stubCatalog) All() []*domain.Event { return c.events }

func (c *stubCatalog) Get(slug string) (*domain.Event, error) {
	for _, e := range c.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

type stubRepo struct {
	upsertIn   []domain.ReservationInput
	upsertRec  *domain.Reservation
	upsertNew  bool
	upsertErr  error
	cancelled  int
	sums       map[string]int
	records    []domain.Reservation
	markedSent []string
}

func (r *stubRepo) Upsert(_ context.Context, in domain.ReservationInput) (*domain.Reservation, bool, error) {
	r.upsertIn = append(r.upsertIn, in)
	if r.upsertErr != nil {
		return nil, false, r.upsertErr
	}
	if r.upsertRec == nil {
		return nil, false, errors.New("stubRepo: no record configured")
	}
	return r.upsertRec, r.upsertNew, nil
}

func (r *stubRepo) Cancel(_ context.Context, eventSlug, email string) (int, error) {
	return r.cancelled, nil
}

func (r *stubRepo) SumReservedSeats(_ context.Context, eventSlug string) (int, error) {
	return r.sums[eventSlug], nil
}

func (r *stubRepo) SumReservedSeatsBatch(_ context.Context, eventSlugs []string) (map[string]int, error) {
	out := make(map[string]int, len(eventSlugs))
	for _, s := range eventSlugs {
		out[s] = r.sums[s]
	}
	return out, nil
}

func (r *stubRepo) ListByEvent(_ context.Context, eventSlug string) ([]domain.Reservation, error) {
	var res []domain.Reservation
	for _, rec := range r.records {
		if rec.EventSlug == eventSlug {
			res = append(res, rec)
		}
	}
	return res, nil
}

func (r *stubRepo) ListAll(_ context.Context) ([]domain.Reservation, error) {
	return r.records, nil
}

func (r *stubRepo) MarkReminderSent(_ context.Context, id string) (bool, error) {
	r.markedSent = append(r.markedSent, id)
	return true, nil
}
