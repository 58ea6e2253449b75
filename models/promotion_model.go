package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PromotionTypeFixed      = "fixed"
	PromotionTypePercentage = "percentage"
)

type Promotion struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code string    `gorm:"size:50;not null;unique" json:"code"`

	Type             string  `gorm:"size:20;not null" json:"type"`
	Value            float64 `gorm:"type:numeric(10,2);not null" json:"value"`
	MaxDiscount      float64 `gorm:"type:numeric(10,2);not null" json:"max_discount"`
	MinBookingAmount float64 `gorm:"type:numeric(10,2);default:0" json:"min_booking_amount"`

	Description *string `gorm:"type:text" json:"description"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
