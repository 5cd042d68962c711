// Package scheduler runs the reminder pass for upcoming events on a cron
// schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/service/ports"
)

type Scheduler struct {
	catalog ports.EventCatalog
	repo    ports.ReservationRepo
	sender  ports.ReminderSender
	spec    string
	window  time.Duration
	loc     *time.Location
	log     *slog.Logger
}

func New(
	catalog ports.EventCatalog,
	repo ports.ReservationRepo,
	sender ports.ReminderSender,
	spec string,
	window time.Duration,
	loc *time.Location,
	log *slog.Logger,
) *Scheduler {
	return &Scheduler{
		catalog: catalog,
		repo:    repo,
		sender:  sender,
		spec:    spec,
		window:  window,
		loc:     loc,
		log:     log,
	}
}

// Start runs the cron loop until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.spec, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("add reminder cron %q: %w", s.spec, err)
	}

	c.Start()
	s.log.Info("reminder scheduler started",
		slog.String("cron", s.spec),
		slog.Duration("window", s.window),
	)

	<-ctx.Done()
	<-c.Stop().Done()
	s.log.Info("reminder scheduler stopped")
	return nil
}

// tick sends one reminder per reservation for every event whose next
// occurrence falls inside the reminder window. A reservation is reminded at
// most once in its lifetime; the sent stamp is persisted before moving on so
// a crash cannot replay the whole batch.
func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now().In(s.loc)

	for _, event := range s.catalog.All() {
		next, ok := event.NextOccurrence(now)
		if !ok {
			continue
		}
		until := next.Sub(now)
		if until <= 0 || until > s.window {
			continue
		}

		reservations, err := s.repo.ListByEvent(ctx, event.Slug)
		if err != nil {
			s.log.Error("failed to list reservations for reminders",
				slog.String("event", event.Slug),
				slog.String("error", err.Error()),
			)
			continue
		}

		for i := range reservations {
			r := &reservations[i]
			if r.ReminderSentAt != nil {
				continue
			}

			s.sender.SendReminder(ctx, r, event, next)

			if _, err := s.repo.MarkReminderSent(ctx, r.ID); err != nil {
				s.log.Error("failed to mark reminder sent",
					slog.String("reservation_id", r.ID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
