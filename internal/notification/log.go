// Package notification holds ReminderSender implementations. Actual
// delivery channels plug in behind the port; the default sender only logs,
// which keeps the booking flow working with no channel configured.
package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
)

type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendReminder(ctx context.Context, r *domain.Reservation, e *domain.Event, startAt time.Time) {
	s.log.LogAttrs(ctx, slog.LevelInfo, "reminder due",
		slog.String("reservation_id", r.ID),
		slog.String("event", e.Slug),
		slog.String("email", r.Email),
		slog.Time("start_at", startAt),
	)
}
