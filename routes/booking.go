package routes

import (
	"bookline/handlers"
	"bookline/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the negotiation engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.AuthMiddleware())
		bookings.POST("", hb.Booking.CreateBooking)
		bookings.GET("", hb.Booking.ListBookings)
		bookings.GET("/:id", hb.Booking.GetBooking)
		bookings.POST("/:id/accept", hb.Booking.AcceptBooking)
		bookings.POST("/:id/decline", hb.Booking.DeclineBooking)
		bookings.POST("/:id/cancel", hb.Booking.CancelBooking)
		bookings.POST("/:id/reschedule", hb.Booking.ProposeReschedule)
	}
}
