package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/calendar"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/domain"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/handler/dto"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/service"
)

type EventSvc interface {
	List(ctx context.Context, locale service.Locale) ([]service.EventOverview, error)
	Get(ctx context.Context, slug string, locale service.Locale) (*service.EventOverview, error)
}

type ReservationSvc interface {
	RSVP(ctx context.Context, eventSlug, name, email string, seats int) (*domain.Reservation, bool, error)
	Cancel(ctx context.Context, eventSlug, email string) (bool, error)
	Export(ctx context.Context) ([]domain.Reservation, error)
}

type Handler struct {
	eventService       EventSvc
	reservationService ReservationSvc
	defaultLocale      service.Locale
}

func NewHandler(eventService EventSvc, reservationService ReservationSvc, defaultLocale service.Locale) *Handler {
	return &Handler{
		eventService:       eventService,
		reservationService: reservationService,
		defaultLocale:      defaultLocale,
	}
}

func (h *Handler) locale(c *gin.Context) service.Locale {
	switch c.Query("lang") {
	case "en":
		return service.LocaleEN
	case "es":
		return service.LocaleES
	}
	return h.defaultLocale
}

// Events

func (h *Handler) ListEvents(c *gin.Context) {
	overviews, err := h.eventService.List(c.Request.Context(), h.locale(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(overviews))
	for i := range overviews {
		resp = append(resp, dto.ToEventResponse(&overviews[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetEvent(c *gin.Context) {
	ov, err := h.eventService.Get(c.Request.Context(), c.Param("slug"), h.locale(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(ov))
}

// GetEventCalendar serves an ICS download for the event's next occurrence.
func (h *Handler) GetEventCalendar(c *gin.Context) {
	ov, err := h.eventService.Get(c.Request.Context(), c.Param("slug"), h.locale(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if ov.NextAt == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "event has no upcoming occurrence"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ov.Event.Slug+`.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.ICS(ov.Event, *ov.NextAt)))
}

// Reservations

func (h *Handler) RSVP(c *gin.Context) {
	var req dto.RSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	rec, created, err := h.reservationService.RSVP(
		c.Request.Context(), c.Param("slug"), req.Name, req.Email, req.Seats,
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToReservationResponse(rec))
}

func (h *Handler) CancelRSVP(c *gin.Context) {
	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	removed, err := h.reservationService.Cancel(c.Request.Context(), c.Param("slug"), req.Email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CancelResponse{Removed: removed})
}

// ExportReservations dumps the whole reservation table for administrators.
func (h *Handler) ExportReservations(c *gin.Context) {
	reservations, err := h.reservationService.Export(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		resp = append(resp, dto.ToReservationResponse(&reservations[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrNoAvailableSpots):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
