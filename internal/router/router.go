package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	ListEvents(c *gin.Context)
	GetEvent(c *gin.Context)
	GetEventCalendar(c *gin.Context)
	RSVP(c *gin.Context)
	CancelRSVP(c *gin.Context)
	ExportReservations(c *gin.Context)
}

// AdminAccounts guards the export endpoint; empty means the endpoint is not
// registered at all.
type AdminAccounts map[string]string

func InitRouter(mode string, h Handler, admin AdminAccounts, rsvpLimit gin.HandlerFunc, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(mode)
	router := gin.New()
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Events
		api.GET("/events", h.ListEvents)
		api.GET("/events/:slug", h.GetEvent)
		api.GET("/events/:slug/calendar.ics", h.GetEventCalendar)

		// Reservations
		rsvp := api.Group("/events/:slug")
		if rsvpLimit != nil {
			rsvp.Use(rsvpLimit)
		}
		rsvp.POST("/rsvp", h.RSVP)
		rsvp.POST("/rsvp/cancel", h.CancelRSVP)

		// Admin
		if len(admin) > 0 {
			api.GET("/reservations",
				gin.BasicAuth(gin.Accounts(admin)),
				h.ExportReservations,
			)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
