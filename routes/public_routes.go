package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/cars", handlers.ListCars)
	api.Get("/cars/:carId", handlers.GetCar)
	api.Post("/cars/search", handlers.SearchCars)

	api.Get("/promotions", handlers.ListPromotions)
	api.Post("/promotions/validate", handlers.ValidateCoupon)
}
