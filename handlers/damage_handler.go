package handlers

import (
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type SubmitDamageReportRequest struct {
	BookingID   string   `json:"booking_id" validate:"required,uuid"`
	Images      []string `json:"images" validate:"required,min=1,dive,url"`
	Description string   `json:"description" validate:"required,min=10"`
}

func SubmitDamageReport(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req SubmitDamageReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bookingID, _ := uuid.Parse(req.BookingID)
	report, err := services.SubmitDamageReport(userID, bookingID, req.Images, req.Description)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func GetMyDamageReports(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var reports []models.DamageReport
	database.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reports)

	return c.JSON(reports)
}

func AdminListDamageReports(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.DamageReport
	query.Find(&reports)
	return c.JSON(reports)
}

func AdminReviewDamageReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("reportId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report ID format"})
	}

	report, err := services.MarkUnderReview(reportID)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.JSON(report)
}

type ApproveDamageReportRequest struct {
	ActualCost float64 `json:"actual_cost" validate:"required,gt=0"`
	Notes      string  `json:"notes" validate:"required"`
}

func AdminApproveDamageReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("reportId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report ID format"})
	}

	var req ApproveDamageReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := services.ApproveDamageReport(reportID, req.ActualCost, req.Notes)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.JSON(report)
}

type RejectDamageReportRequest struct {
	Notes string `json:"notes" validate:"required"`
}

func AdminRejectDamageReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("reportId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report ID format"})
	}

	var req RejectDamageReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := services.RejectDamageReport(reportID, req.Notes)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.JSON(report)
}
