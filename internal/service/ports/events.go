package ports

import (
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
)

type EventCatalog interface {
	All() []*domain.Event
	Get(slug string) (*domain.Event, error)
}
