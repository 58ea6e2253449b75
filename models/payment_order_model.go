package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusCreated  = "created"
	OrderStatusVerified = "verified"
	OrderStatusFailed   = "failed"
	OrderStatusExpired  = "expired"

	EntityTypeBooking      = "booking"
	EntityTypeDamageReport = "damage_report"
)

// PaymentOrder tracks a gateway-side intent to collect an amount against a
// booking or an approved damage report. Once verified or failed it is never
// mutated again.
type PaymentOrder struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GatewayOrderID *string   `gorm:"size:255;unique" json:"gateway_order_id"`

	Amount   float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency string  `gorm:"size:3;not null" json:"currency"`

	RelatedEntityType string    `gorm:"size:30;not null;index:idx_order_entity" json:"related_entity_type"`
	RelatedEntityID   uuid.UUID `gorm:"not null;index:idx_order_entity" json:"related_entity_id"`

	IdempotencyKey string  `gorm:"size:255;not null" json:"-"`
	GatewayTxnID   *string `gorm:"size:255;unique" json:"gateway_txn_id"`

	Status string `gorm:"size:20;not null;default:'created'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
