package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/service/ports"
)

type ReservationService struct {
	repo    ports.ReservationRepo
	catalog ports.EventCatalog
	log     *slog.Logger
}

func NewReservationService(repo ports.ReservationRepo, catalog ports.EventCatalog, log *slog.Logger) *ReservationService {
	return &ReservationService{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

// RSVP creates or replaces the caller's reservation for an event. A repeat
// submission from the same email updates the existing record in place; the
// second result reports whether a new record was created.
func (s *ReservationService) RSVP(ctx context.Context, eventSlug, name, email string, seats int) (*domain.Reservation, bool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, false, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if domain.NormalizeEmail(email) == "" {
		return nil, false, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if seats < 1 {
		return nil, false, fmt.Errorf("%w: seats must be at least 1", domain.ErrValidation)
	}

	event, err := s.catalog.Get(eventSlug)
	if err != nil {
		return nil, false, fmt.Errorf("check event: %w", err)
	}

	rec, created, err := s.repo.Upsert(ctx, domain.ReservationInput{
		EventSlug: event.Slug,
		Name:      strings.TrimSpace(name),
		Email:     email,
		Seats:     seats,
		Capacity:  event.Capacity,
	})
	if err != nil {
		return nil, false, fmt.Errorf("upsert reservation: %w", err)
	}

	s.log.Info("reservation saved",
		slog.String("reservation_id", rec.ID),
		slog.String("event", event.Slug),
		slog.Int("seats", rec.Seats),
		slog.Bool("created", created),
	)

	return rec, created, nil
}

// Cancel removes the reservation for (event, email). Cancelling a
// reservation that does not exist succeeds with removed=false.
func (s *ReservationService) Cancel(ctx context.Context, eventSlug, email string) (bool, error) {
	if _, err := s.catalog.Get(eventSlug); err != nil {
		return false, fmt.Errorf("check event: %w", err)
	}

	removed, err := s.repo.Cancel(ctx, eventSlug, email)
	if err != nil {
		return false, fmt.Errorf("cancel reservation: %w", err)
	}

	if removed > 0 {
		s.log.Info("reservation cancelled",
			slog.String("event", eventSlug),
		)
	}

	return removed > 0, nil
}

// Export returns every reservation for administrative use.
func (s *ReservationService) Export(ctx context.Context) ([]domain.Reservation, error) {
	return s.repo.ListAll(ctx)
}
