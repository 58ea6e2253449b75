package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking)
	booking.Post("/:bookingId/cancel", handlers.CancelBooking)
}
