package dto

import (
	"time"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/service"
)

type EventResponse struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Capacity     *int   `json:"capacity,omitempty"`
	NextAt       string `json:"next_at,omitempty"`
	Availability string `json:"availability,omitempty"`
}

type ReservationResponse struct {
	ID        string `json:"id"`
	EventSlug string `json:"event_slug"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Seats     int    `json:"seats"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CancelResponse struct {
	Removed bool `json:"removed"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToEventResponse(ov *service.EventOverview) EventResponse {
	resp := EventResponse{
		Slug:        ov.Event.Slug,
		Title:       ov.Event.Title,
		Description: ov.Event.Description,
		Location:    ov.Event.Location,
		Capacity:    ov.Event.Capacity,
	}
	if ov.NextAt != nil {
		resp.NextAt = ov.NextAt.Format(time.RFC3339)
	}
	if ov.HasLabel {
		resp.Availability = ov.Availability
	}
	return resp
}

func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        r.ID,
		EventSlug: r.EventSlug,
		Name:      r.Name,
		Email:     r.Email,
		Seats:     r.Seats,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}
