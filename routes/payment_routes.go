package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payment := api.Group("/payments", middleware.Protected())
	payment.Post("/orders", handlers.CreatePaymentOrder)
	payment.Post("/verify", handlers.VerifyPayment)
	payment.Post("/qr", handlers.CreateQrPayment)
	payment.Post("/qr/confirm", handlers.ConfirmUpiPayment)
}
