// Package repository holds the durable state behind the booking flow: the
// file-backed reservation table and the read-only events catalog.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
)

// tableVersion tags the durable document so future migrations can detect
// older layouts. A reader seeing any other version treats the table as empty.
const tableVersion = 1

// table is the full durable document. The dataset is small (low thousands of
// RSVPs), so the whole table is read and replaced as one unit.
type table struct {
	Version      int                  `json:"version"`
	Reservations []domain.Reservation `json:"reservations"`
}

// ReservationStore keeps all reservations in a single JSON file, replaced
// atomically on every write (serialize to a sibling temp path, then rename).
// Reads go through an in-memory cache with a short TTL; concurrent cache
// misses share one disk read.
//
// Mutations are serialized within the process. Writers in other processes
// sharing the same file race last-write-wins on the whole table; atomic
// rename keeps the file intact but provides no cross-process mutual
// exclusion. That trade-off is accepted for the site's deployment scale.
type ReservationStore struct {
	path     string
	cacheTTL time.Duration
	log      *slog.Logger

	mu sync.Mutex // serializes read-modify-write mutations

	cacheMu  sync.RWMutex
	cached   *table
	cachedAt time.Time

	flight singleflight.Group
}

const defaultCacheTTL = 5 * time.Second

// NewReservationStore opens a store over the given file path. The file is
// created lazily on first write; a missing file reads as an empty table.
func NewReservationStore(path string, cacheTTL time.Duration, log *slog.Logger) *ReservationStore {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &ReservationStore{
		path:     path,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Upsert creates or replaces the reservation keyed by (event, normalized
// email). The second result reports whether a new record was created. When
// in.Capacity is set, the total of all seats for the event after the write
// must not exceed it; violating writes fail with ErrNoAvailableSpots and
// leave the table untouched.
func (s *ReservationStore) Upsert(ctx context.Context, in domain.ReservationInput) (*domain.Reservation, bool, error) {
	email := domain.NormalizeEmail(in.Email)
	now := time.Now().UTC()

	var rec domain.Reservation
	var created bool
	err := s.mutate(ctx, func(t *table) error {
		idx := -1
		total := 0
		for i := range t.Reservations {
			r := &t.Reservations[i]
			if r.EventSlug != in.EventSlug {
				continue
			}
			if r.Email == email {
				idx = i
				continue // replaced below; do not count its old seats
			}
			if r.Seats > 0 {
				total += r.Seats
			}
		}

		if in.Capacity != nil && total+in.Seats > *in.Capacity {
			return domain.ErrNoAvailableSpots
		}

		if idx >= 0 {
			r := &t.Reservations[idx]
			r.Name = in.Name
			r.Seats = in.Seats
			r.UpdatedAt = now
			rec = *r
			return nil
		}

		created = true
		rec = domain.Reservation{
			ID:        uuid.New().String(),
			EventSlug: in.EventSlug,
			Name:      in.Name,
			Email:     email,
			Seats:     in.Seats,
			CreatedAt: now,
			UpdatedAt: now,
		}
		t.Reservations = append(t.Reservations, rec)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &rec, created, nil
}

// Cancel removes the reservation for (event, normalized email) and returns
// how many records were removed (0 or 1). Cancelling a reservation that does
// not exist is not an error.
func (s *ReservationStore) Cancel(ctx context.Context, eventSlug, email string) (int, error) {
	key := domain.NormalizeEmail(email)

	removed := 0
	err := s.mutate(ctx, func(t *table) error {
		kept := t.Reservations[:0]
		for _, r := range t.Reservations {
			if r.EventSlug == eventSlug && r.Email == key {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		if removed == 0 {
			return errNoChange
		}
		t.Reservations = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// SumReservedSeats totals the seats reserved for one event. Records with a
// non-positive seat count contribute nothing, so a damaged record cannot
// corrupt the aggregate.
func (s *ReservationStore) SumReservedSeats(ctx context.Context, eventSlug string) (int, error) {
	t, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, r := range t.Reservations {
		if r.EventSlug == eventSlug && r.Seats > 0 {
			total += r.Seats
		}
	}
	return total, nil
}

// SumReservedSeatsBatch totals seats for several events in one table read.
// Every requested slug appears in the result, defaulting to 0.
func (s *ReservationStore) SumReservedSeatsBatch(ctx context.Context, eventSlugs []string) (map[string]int, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]int, len(eventSlugs))
	for _, slug := range eventSlugs {
		sums[slug] = 0
	}
	for _, r := range t.Reservations {
		if _, ok := sums[r.EventSlug]; ok && r.Seats > 0 {
			sums[r.EventSlug] += r.Seats
		}
	}
	return sums, nil
}

// ListByEvent returns the reservations held against one event.
func (s *ReservationStore) ListByEvent(ctx context.Context, eventSlug string) ([]domain.Reservation, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var res []domain.Reservation
	for _, r := range t.Reservations {
		if r.EventSlug == eventSlug {
			res = append(res, r)
		}
	}
	return res, nil
}

// ListAll returns every reservation, for administrative export.
func (s *ReservationStore) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	t, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Reservation, len(t.Reservations))
	copy(res, t.Reservations)
	return res, nil
}

// MarkReminderSent stamps the record's reminder timestamp. It reports false
// when no record carries the given id.
func (s *ReservationStore) MarkReminderSent(ctx context.Context, id string) (bool, error) {
	now := time.Now().UTC()

	found := false
	err := s.mutate(ctx, func(t *table) error {
		for i := range t.Reservations {
			if t.Reservations[i].ID == id {
				t.Reservations[i].ReminderSentAt = &now
				found = true
				return nil
			}
		}
		return errNoChange
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// errNoChange lets a mutation report "nothing to write" without surfacing an
// error to the caller; the durable file is left alone.
var errNoChange = errors.New("no change")

// mutate runs a read-modify-write cycle over the whole table under the
// writer lock: load, apply fn to a private copy, persist atomically, refresh
// the cache with the just-written table.
func (s *ReservationStore) mutate(ctx context.Context, fn func(*table) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.load(ctx)
	if err != nil {
		return err
	}

	// Work on a copy: readers may still hold the cached table.
	next := &table{
		Version:      tableVersion,
		Reservations: make([]domain.Reservation, len(cur.Reservations)),
	}
	copy(next.Reservations, cur.Reservations)

	if err := fn(next); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}

	if err := s.write(next); err != nil {
		return err
	}

	s.setCache(next)
	return nil
}

// write serializes the table to a sibling temp path and renames it over the
// canonical file. A failure before the rename leaves the previous durable
// state intact; at worst the temp file is orphaned.
func (s *ReservationStore) write(t *table) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reservations: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write reservations temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace reservations file: %w", err)
	}
	return nil
}

// load returns the current table, serving from the cache while it is fresh.
// Concurrent cache misses are coalesced into a single disk read.
func (s *ReservationStore) load(ctx context.Context) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.cacheMu.RLock()
	if s.cached != nil && time.Since(s.cachedAt) < s.cacheTTL {
		t := s.cached
		s.cacheMu.RUnlock()
		return t, nil
	}
	s.cacheMu.RUnlock()

	v, err, _ := s.flight.Do("load", func() (any, error) {
		t, err := s.read()
		if err != nil {
			return nil, err
		}
		s.setCache(t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*table), nil
}

// read deserializes the durable file. A missing or corrupt file recovers as
// an empty table: losing reservation history is preferable to taking the
// booking flow offline.
func (s *ReservationStore) read() (*table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &table{Version: tableVersion}, nil
		}
		return nil, fmt.Errorf("read reservations file: %w", err)
	}

	var t table
	if err := json.Unmarshal(data, &t); err != nil {
		s.log.Warn("reservations file is corrupt, starting from an empty table",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return &table{Version: tableVersion}, nil
	}
	if t.Version != tableVersion {
		s.log.Warn("reservations file has an unknown schema version, starting from an empty table",
			slog.String("path", s.path),
			slog.Int("version", t.Version),
		)
		return &table{Version: tableVersion}, nil
	}
	return &t, nil
}

func (s *ReservationStore) setCache(t *table) {
	s.cacheMu.Lock()
	s.cached = t
	s.cachedAt = time.Now()
	s.cacheMu.Unlock()
}
