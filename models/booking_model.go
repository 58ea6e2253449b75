package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Booking struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CarID  uuid.UUID `gorm:"not null;index" json:"car_id"`
	UserID uuid.UUID `gorm:"not null;index" json:"user_id"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	TotalPrice    float64 `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Discount      float64 `gorm:"type:numeric(10,2);default:0" json:"discount"`
	PromotionCode *string `gorm:"size:50" json:"promotion_code"`
	Currency      string  `gorm:"size:3" json:"currency"`

	Status        string `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	AdminApproved bool   `gorm:"default:false" json:"admin_approved"`

	ReceiptURL *string `gorm:"size:255" json:"receipt_url"`

	Car  Car  `gorm:"foreignkey:CarID" json:"car,omitempty"`
	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
