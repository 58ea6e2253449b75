package handlers

import (
	"log"

	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/inference"
	"github.com/anjiri1684/car_rental/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListCars(c *fiber.Ctx) error {
	query := database.DB.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var cars []models.Car
	query.Order("price_per_day asc").Find(&cars)
	return c.JSON(cars)
}

func GetCar(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("carId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid car ID format"})
	}

	var car models.Car
	if err := database.DB.Where("id = ? AND is_active = ?", carID, true).First(&car).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
	}
	return c.JSON(car)
}

type SearchCarsRequest struct {
	Query string `json:"query" validate:"required,min=3"`
}

// SearchCars turns a natural-language query into inventory filters via the
// inference collaborator, then answers from the local catalogue. If the
// service is down it degrades to the plain active listing.
func SearchCars(c *fiber.Ctx) error {
	var req SearchCarsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	query := database.DB.Where("is_active = ?", true)

	filters, err := inference.SearchCars(req.Query)
	if err != nil {
		log.Printf("Car search inference unavailable, falling back to full listing: %v", err)
	} else {
		if filters.Category != "" {
			query = query.Where("category = ?", filters.Category)
		}
		if filters.Make != "" {
			query = query.Where("make ILIKE ?", filters.Make)
		}
		if filters.MaxPricePerDay > 0 {
			query = query.Where("price_per_day <= ?", filters.MaxPricePerDay)
		}
		if filters.MinYear > 0 {
			query = query.Where("year >= ?", filters.MinYear)
		}
	}

	var cars []models.Car
	query.Order("price_per_day asc").Find(&cars)
	return c.JSON(cars)
}

type CarRequest struct {
	Make             string  `json:"make" validate:"required,min=2"`
	Model            string  `json:"model" validate:"required,min=1"`
	Year             int     `json:"year" validate:"required,gte=1990"`
	Category         string  `json:"category" validate:"required"`
	PricePerDay      float64 `json:"price_per_day" validate:"required,gt=0"`
	Currency         string  `json:"currency" validate:"required,iso4217"`
	ImageURL         *string `json:"image_url,omitempty"`
	RequiresApproval bool    `json:"requires_approval"`
	IsActive         bool    `json:"is_active"`
}

func AdminCreateCar(c *fiber.Ctx) error {
	var req CarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	car := models.Car{
		Make:             req.Make,
		Model:            req.Model,
		Year:             req.Year,
		Category:         req.Category,
		PricePerDay:      req.PricePerDay,
		Currency:         req.Currency,
		ImageURL:         req.ImageURL,
		RequiresApproval: req.RequiresApproval,
		IsActive:         req.IsActive,
	}
	if err := database.DB.Create(&car).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create car"})
	}

	return c.Status(fiber.StatusCreated).JSON(car)
}

func AdminUpdateCar(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("carId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid car ID format"})
	}

	var car models.Car
	if err := database.DB.First(&car, "id = ?", carID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
	}

	var req CarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	car.Make = req.Make
	car.Model = req.Model
	car.Year = req.Year
	car.Category = req.Category
	car.PricePerDay = req.PricePerDay
	car.Currency = req.Currency
	car.ImageURL = req.ImageURL
	car.RequiresApproval = req.RequiresApproval
	car.IsActive = req.IsActive

	if err := database.DB.Save(&car).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update car"})
	}

	return c.JSON(car)
}

func AdminDeactivateCar(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("carId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid car ID format"})
	}

	result := database.DB.Model(&models.Car{}).Where("id = ?", carID).Update("is_active", false)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate car"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
	}

	return c.JSON(fiber.Map{"message": "Car removed from the rental fleet"})
}
