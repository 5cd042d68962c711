package repository

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/recurrence"
)

// EventCatalog is the read-only set of gatherings the site advertises,
// loaded once from the YAML content file at startup.
type EventCatalog struct {
	events []*domain.Event
	bySlug map[string]*domain.Event
}

// eventYAML is the catalog file shape. One-off events carry start_at as
// "2006-01-02 15:04" interpreted in the site timezone; recurring events
// carry a recurrence block instead.
type eventYAML struct {
	Slug            string           `yaml:"slug"`
	Title           string           `yaml:"title"`
	Description     string           `yaml:"description"`
	Location        string           `yaml:"location"`
	Capacity        *int             `yaml:"capacity"`
	Recurrence      *recurrence.Rule `yaml:"recurrence"`
	StartAt         string           `yaml:"start_at"`
	DurationMinutes int              `yaml:"duration_minutes"`
}

type catalogYAML struct {
	Events []eventYAML `yaml:"events"`
}

const startAtLayout = "2006-01-02 15:04"

// LoadEventCatalog reads and validates the catalog file. Every slug must be
// unique and an event may not be both recurring and one-off.
func LoadEventCatalog(path string, loc *time.Location) (*EventCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events catalog: %w", err)
	}

	var raw catalogYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse events catalog: %w", err)
	}

	c := &EventCatalog{bySlug: make(map[string]*domain.Event, len(raw.Events))}
	for _, re := range raw.Events {
		if re.Slug == "" {
			return nil, fmt.Errorf("events catalog: event %q has no slug", re.Title)
		}
		if _, dup := c.bySlug[re.Slug]; dup {
			return nil, fmt.Errorf("events catalog: duplicate slug %q", re.Slug)
		}
		if re.Recurrence != nil && re.StartAt != "" {
			return nil, fmt.Errorf("events catalog: event %q has both recurrence and start_at", re.Slug)
		}

		e := &domain.Event{
			Slug:            re.Slug,
			Title:           re.Title,
			Description:     re.Description,
			Location:        re.Location,
			Capacity:        re.Capacity,
			Recurrence:      re.Recurrence,
			DurationMinutes: re.DurationMinutes,
		}
		if re.StartAt != "" {
			at, err := time.ParseInLocation(startAtLayout, re.StartAt, loc)
			if err != nil {
				return nil, fmt.Errorf("events catalog: event %q start_at: %w", re.Slug, err)
			}
			e.StartAt = &at
		}

		c.events = append(c.events, e)
		c.bySlug[e.Slug] = e
	}

	return c, nil
}

// All returns the catalog in file order.
func (c *EventCatalog) All() []*domain.Event {
	return c.events
}

// Get looks an event up by slug.
func (c *EventCatalog) Get(slug string) (*domain.Event, error) {
	e, ok := c.bySlug[slug]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return e, nil
}
