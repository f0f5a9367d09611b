package routers

import (
	"psymate-service/internal/app/delivery/http/controllers"
	"psymate-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController) {
	router.Get("/", bookingController.FindBookings)
	router.Post("/", bookingController.CreateBooking)
	router.Put("/{appointmentId}", bookingController.RescheduleBooking)
	router.Delete("/", bookingController.CancelBooking)
}
