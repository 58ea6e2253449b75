package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	cars := admin.Group("/cars")
	cars.Post("", handlers.AdminCreateCar)
	cars.Put("/:carId", handlers.AdminUpdateCar)
	cars.Delete("/:carId", handlers.AdminDeactivateCar)

	promotions := admin.Group("/promotions")
	promotions.Get("", handlers.AdminListPromotions)
	promotions.Post("", handlers.AdminCreatePromotion)
	promotions.Put("/:promotionId", handlers.AdminUpdatePromotion)
	promotions.Delete("/:promotionId", handlers.AdminDeactivatePromotion)

	admin.Get("/bookings", handlers.AdminGetAllBookings)
	admin.Post("/bookings/:bookingId/approve", handlers.AdminApproveBooking)

	admin.Get("/payments", handlers.AdminGetPayments)

	reports := admin.Group("/damage-reports")
	reports.Get("", handlers.AdminListDamageReports)
	reports.Post("/:reportId/review", handlers.AdminReviewDamageReport)
	reports.Post("/:reportId/approve", handlers.AdminApproveDamageReport)
	reports.Post("/:reportId/reject", handlers.AdminRejectDamageReport)
}
