package models

import (
	"time"

	"github.com/google/uuid"
)

type Car struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Make        string    `gorm:"size:100;not null" json:"make"`
	Model       string    `gorm:"size:100;not null" json:"model"`
	Year        int       `gorm:"not null" json:"year"`
	Category    string    `gorm:"size:50" json:"category"`
	PricePerDay float64   `gorm:"type:numeric(10,2);not null" json:"price_per_day"`
	Currency    string    `gorm:"size:3;default:'INR'" json:"currency"`
	ImageURL    *string   `gorm:"size:255" json:"image_url"`

	// Premium vehicles need an admin sign-off before a booking can be paid for.
	RequiresApproval bool `gorm:"default:false" json:"requires_approval"`
	IsActive         bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
