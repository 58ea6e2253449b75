package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/middleware"
	"github.com/gofiber/fiber/v2"
)

func DamageRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	damage := api.Group("/damage-reports", middleware.Protected())
	damage.Get("/me", handlers.GetMyDamageReports)
	damage.Post("", handlers.SubmitDamageReport)
}
