package ports

import (
	"context"
	"time"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
)

// ReminderSender delivers an upcoming-event reminder for one reservation.
// Delivery itself lives outside this core; implementations may log, email,
// or hand off to any channel.
type ReminderSender interface {
	SendReminder(ctx context.Context, r *domain.Reservation, e *domain.Event, startAt time.Time)
}
