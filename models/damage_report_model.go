package models

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DamageStatusPending     = "pending"
	DamageStatusUnderReview = "under_review"
	DamageStatusApproved    = "approved"
	DamageStatusRejected    = "rejected"
)

type DamageReport struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID `gorm:"not null;index" json:"booking_id"`
	CarID     uuid.UUID `gorm:"not null" json:"car_id"`
	UserID    uuid.UUID `gorm:"not null;index" json:"user_id"`

	Images      StringSlice `gorm:"type:text" json:"images"`
	Description string      `gorm:"type:text;not null" json:"description"`

	AiDamageType    *string  `gorm:"size:100" json:"ai_damage_type"`
	AiSeverity      *string  `gorm:"size:50" json:"ai_severity"`
	AiEstimatedCost *float64 `gorm:"type:numeric(10,2)" json:"ai_estimated_cost"`
	AiDescription   *string  `gorm:"type:text" json:"ai_description"`

	Status        string   `gorm:"size:20;not null;default:'pending'" json:"status"`
	ActualCost    *float64 `gorm:"type:numeric(10,2)" json:"actual_cost"`
	AdminNotes    *string  `gorm:"type:text" json:"admin_notes"`
	PaymentStatus string   `gorm:"size:20;not null;default:'pending'" json:"payment_status"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"-"`
	User    User    `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StringSlice stores image URLs as a newline separated text column.
type StringSlice []string

func (s *StringSlice) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	}
	if raw == "" {
		*s = nil
		return nil
	}
	*s = strings.Split(raw, "\n")
	return nil
}

func (s StringSlice) Value() (driver.Value, error) {
	return strings.Join(s, "\n"), nil
}

func (StringSlice) GormDataType() string { return "text" }
