package ports

import (
	"context"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
)

type ReservationRepo interface {
	Upsert(ctx context.Context, in domain.ReservationInput) (*domain.Reservation, bool, error)
	Cancel(ctx context.Context, eventSlug, email string) (int, error)
	SumReservedSeats(ctx context.Context, eventSlug string) (int, error)
	SumReservedSeatsBatch(ctx context.Context, eventSlugs []string) (map[string]int, error)
	ListByEvent(ctx context.Context, eventSlug string) ([]domain.Reservation, error)
	ListAll(ctx context.Context) ([]domain.Reservation, error)
	MarkReminderSent(ctx context.Context, id string) (bool, error)
}
