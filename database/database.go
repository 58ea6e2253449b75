package database

import (
	"fmt"
	"log"

	config "github.com/anjiri1684/car_rental/configs"
	"github.com/anjiri1684/car_rental/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Booking{},
		&models.PaymentOrder{},
		&models.UpiQrTransaction{},
		&models.DamageReport{},
		&models.Promotion{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

func SeedCars() {
	var count int64
	if err := DB.Model(&models.Car{}).Count(&count).Error; err != nil {
		log.Printf("🔥 Failed to check car catalogue: %v", err)
		return
	}
	if count > 0 {
		return
	}

	cars := []models.Car{
		{
			Make:        "Maruti Suzuki",
			Model:       "Swift",
			Year:        2023,
			Category:    "hatchback",
			PricePerDay: 1800,
			Currency:    "INR",
			IsActive:    true,
		},
		{
			Make:        "Hyundai",
			Model:       "Creta",
			Year:        2024,
			Category:    "suv",
			PricePerDay: 3200,
			Currency:    "INR",
			IsActive:    true,
		},
		{
			Make:             "Mercedes-Benz",
			Model:            "E-Class",
			Year:             2024,
			Category:         "luxury",
			PricePerDay:      9500,
			Currency:         "INR",
			RequiresApproval: true,
			IsActive:         true,
		},
	}

	if err := DB.Create(&cars).Error; err != nil {
		log.Printf("🔥 Failed to seed car catalogue: %v", err)
		return
	}
	log.Println("✅ Car catalogue seeded successfully")
}

func SeedPromotions() {
	var count int64
	if err := DB.Model(&models.Promotion{}).Count(&count).Error; err != nil {
		log.Printf("🔥 Failed to check promotions: %v", err)
		return
	}
	if count > 0 {
		return
	}

	welcomeDesc := "Flat 50 off your first booking"
	weekendDesc := "10% off weekend rentals"
	promotions := []models.Promotion{
		{
			Code:             "WELCOME50",
			Type:             models.PromotionTypeFixed,
			Value:            50,
			MaxDiscount:      50,
			MinBookingAmount: 500,
			Description:      &welcomeDesc,
			Active:           true,
		},
		{
			Code:             "WEEKEND10",
			Type:             models.PromotionTypePercentage,
			Value:            10,
			MaxDiscount:      400,
			MinBookingAmount: 1000,
			Description:      &weekendDesc,
			Active:           true,
		},
	}

	if err := DB.Create(&promotions).Error; err != nil {
		log.Printf("🔥 Failed to seed promotions: %v", err)
		return
	}
	log.Println("✅ Promotions seeded successfully")
}
