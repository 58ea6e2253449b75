package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	UpiStatusCreated   = "created"
	UpiStatusConfirmed = "confirmed"
)

// UpiQrTransaction is the QR rail specialization of a payment order. It keeps
// its own reference so a scanning client can confirm without knowing internal
// order IDs; the backing PaymentOrder carries the settlement invariants.
type UpiQrTransaction struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TransactionRef string    `gorm:"size:50;not null;unique" json:"transaction_ref"`
	UpiID          string    `gorm:"size:255;not null" json:"upi_id"`

	BookingID      uuid.UUID `gorm:"not null" json:"booking_id"`
	PaymentOrderID uuid.UUID `gorm:"not null" json:"payment_order_id"`

	Amount   float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	TestMode bool    `gorm:"default:false" json:"test_mode"`

	UpiTransactionID *string `gorm:"size:255" json:"upi_transaction_id"`
	Status           string  `gorm:"size:20;not null;default:'created'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
