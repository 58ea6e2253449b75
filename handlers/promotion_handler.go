package handlers

import (
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListPromotions(c *fiber.Ctx) error {
	var promotions []models.Promotion
	database.DB.Where("active = ?", true).Find(&promotions)
	return c.JSON(promotions)
}

type ValidateCouponRequest struct {
	Code       string  `json:"code" validate:"required"`
	BaseAmount float64 `json:"base_amount" validate:"required,gt=0"`
}

func ValidateCoupon(c *fiber.Ctx) error {
	var req ValidateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := services.ValidateCoupon(req.Code, req.BaseAmount)
	if err != nil {
		return renderDomainError(c, err)
	}

	return c.JSON(result)
}

type PromotionRequest struct {
	Code             string  `json:"code" validate:"required,min=3,max=50"`
	Type             string  `json:"type" validate:"required,oneof=fixed percentage"`
	Value            float64 `json:"value" validate:"required,gt=0"`
	MaxDiscount      float64 `json:"max_discount" validate:"required,gt=0"`
	MinBookingAmount float64 `json:"min_booking_amount" validate:"gte=0"`
	Description      *string `json:"description,omitempty"`
	Active           bool    `json:"active"`
}

func AdminListPromotions(c *fiber.Ctx) error {
	var promotions []models.Promotion
	database.DB.Order("created_at desc").Find(&promotions)
	return c.JSON(promotions)
}

func AdminCreatePromotion(c *fiber.Ctx) error {
	var req PromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	promotion := models.Promotion{
		Code:             req.Code,
		Type:             req.Type,
		Value:            req.Value,
		MaxDiscount:      req.MaxDiscount,
		MinBookingAmount: req.MinBookingAmount,
		Description:      req.Description,
		Active:           req.Active,
	}
	if err := database.DB.Create(&promotion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create promotion"})
	}

	return c.Status(fiber.StatusCreated).JSON(promotion)
}

func AdminUpdatePromotion(c *fiber.Ctx) error {
	promotionID, err := uuid.Parse(c.Params("promotionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid promotion ID format"})
	}

	var promotion models.Promotion
	if err := database.DB.First(&promotion, "id = ?", promotionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Promotion not found"})
	}

	var req PromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	promotion.Code = req.Code
	promotion.Type = req.Type
	promotion.Value = req.Value
	promotion.MaxDiscount = req.MaxDiscount
	promotion.MinBookingAmount = req.MinBookingAmount
	promotion.Description = req.Description
	promotion.Active = req.Active

	if err := database.DB.Save(&promotion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update promotion"})
	}

	return c.JSON(promotion)
}

func AdminDeactivatePromotion(c *fiber.Ctx) error {
	promotionID, err := uuid.Parse(c.Params("promotionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid promotion ID format"})
	}

	result := database.DB.Model(&models.Promotion{}).Where("id = ?", promotionID).Update("active", false)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate promotion"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Promotion not found"})
	}

	return c.JSON(fiber.Map{"message": "Promotion deactivated"})
}
