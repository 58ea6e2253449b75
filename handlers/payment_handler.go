package handlers

import (
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	EntityType string  `json:"entity_type" validate:"required,oneof=booking damage_report"`
	EntityID   string  `json:"entity_id" validate:"required,uuid"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
}

func CreatePaymentOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entityID, _ := uuid.Parse(req.EntityID)
	order, err := services.CreateOrder(req.EntityType, entityID, req.Amount)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

type VerifyPaymentRequest struct {
	OrderID          string `json:"order_id" validate:"required,uuid"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
}

func VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	orderID, _ := uuid.Parse(req.OrderID)
	order, err := services.VerifyPayment(orderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Payment verified and settled.",
		"order":   order,
	})
}

type CreateQrPaymentRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	TestMode  bool    `json:"test_mode,omitempty"`
}

func CreateQrPayment(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateQrPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bookingID, _ := uuid.Parse(req.BookingID)
	txn, err := services.CreateQrPayment(userID, bookingID, req.Amount, req.TestMode)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(txn)
}

type ConfirmUpiPaymentRequest struct {
	TransactionRef   string `json:"transaction_ref" validate:"required"`
	UpiTransactionID string `json:"upi_transaction_id" validate:"required"`
}

func ConfirmUpiPayment(c *fiber.Ctx) error {
	var req ConfirmUpiPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	txn, err := services.ConfirmUpiPayment(req.TransactionRef, req.UpiTransactionID)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "UPI payment confirmed.",
		"transaction": txn,
	})
}

func AdminGetPayments(c *fiber.Ctx) error {
	var orders []models.PaymentOrder
	database.DB.Order("created_at desc").Find(&orders)
	return c.JSON(orders)
}
