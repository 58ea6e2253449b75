package handlers

import (
	"time"

	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CarID         string  `json:"car_id" validate:"required,uuid"`
	StartDate     string  `json:"start_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate       string  `json:"end_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	PromotionCode *string `json:"promotion_code,omitempty"`
}

func CreateBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	carID, _ := uuid.Parse(req.CarID)
	startDate, _ := time.Parse(time.RFC3339, req.StartDate)
	endDate, _ := time.Parse(time.RFC3339, req.EndDate)

	booking, err := services.CreateBooking(userID, carID, startDate, endDate, req.PromotionCode)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func CancelBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	booking, err := services.CancelBooking(userID, bookingID)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Booking cancelled and dates released.",
		"booking": booking,
	})
}

func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var bookings []models.Booking
	database.DB.
		Preload("Car").
		Where("user_id = ?", userID).
		Order("start_date desc").
		Find(&bookings)

	return c.JSON(bookings)
}

func AdminGetAllBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	database.DB.
		Preload("Car").
		Order("created_at desc").
		Find(&bookings)

	return c.JSON(bookings)
}

func AdminApproveBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	booking, err := services.ApproveBooking(bookingID)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Booking approved for payment.",
		"booking": booking,
	})
}
