package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	config "github.com/anjiri1684/car_rental/configs"
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/notifications"
	"github.com/anjiri1684/car_rental/payments"
	"github.com/anjiri1684/car_rental/utils"
	"github.com/anjiri1684/car_rental/websocket"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultOrderExpiryMinutes = 15

// OrderIdempotencyKey is stable for one collection attempt, so the transport
// retry inside the gateway client lands on the same gateway order. A fresh
// attempt after an expiry or failure carries its own attempt id; a gateway
// that dedupes on the key then issues a new order instead of echoing the dead
// one back into the unique gateway_order_id column.
func OrderIdempotencyKey(entityType string, entityID uuid.UUID, amount float64, attemptID uuid.UUID) string {
	return fmt.Sprintf("%s|%s|%.2f|%s", entityType, entityID, amount, attemptID)
}

func orderExpiryWindow() time.Duration {
	minutes := config.ConfigInt("ORDER_EXPIRY_MINUTES", defaultOrderExpiryMinutes)
	return time.Duration(minutes) * time.Minute
}

type payableTarget struct {
	UserID   uuid.UUID
	Amount   float64
	Currency string
}

// checkPayable enforces the shared guards for creating any payment order:
// the target must exist, must not already be paid, must be in a payable
// state, and the requested amount must match what the entity owes.
func checkPayable(tx *gorm.DB, entityType string, entityID uuid.UUID, amount float64, lock bool) (*payableTarget, error) {
	query := tx
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	switch entityType {
	case models.EntityTypeBooking:
		var booking models.Booking
		if err := query.First(&booking, "id = ?", entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound("booking not found")
			}
			return nil, err
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			return nil, ErrAlreadyPaid("booking is already paid")
		}
		if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCompleted {
			return nil, ErrConflict("booking is no longer payable")
		}

		var car models.Car
		if err := tx.First(&car, "id = ?", booking.CarID).Error; err != nil {
			return nil, err
		}
		if car.RequiresApproval && !booking.AdminApproved {
			return nil, ErrApprovalRequired("this booking needs admin approval before payment")
		}
		if amount != booking.TotalPrice {
			return nil, ErrValidation("amount does not match the booking total")
		}
		return &payableTarget{UserID: booking.UserID, Amount: booking.TotalPrice, Currency: booking.Currency}, nil

	case models.EntityTypeDamageReport:
		var report models.DamageReport
		if err := query.First(&report, "id = ?", entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound("damage report not found")
			}
			return nil, err
		}
		if report.PaymentStatus == models.PaymentStatusPaid {
			return nil, ErrAlreadyPaid("damage report is already settled")
		}
		if report.Status != models.DamageStatusApproved || report.ActualCost == nil {
			return nil, ErrConflict("only approved damage reports can be paid")
		}
		if amount != *report.ActualCost {
			return nil, ErrValidation("amount does not match the approved cost")
		}

		var booking models.Booking
		if err := tx.First(&booking, "id = ?", report.BookingID).Error; err != nil {
			return nil, err
		}
		return &payableTarget{UserID: report.UserID, Amount: *report.ActualCost, Currency: booking.Currency}, nil

	default:
		return nil, ErrValidation("unknown payable entity type")
	}
}

// expireOrRejectInFlight enforces at most one live order per entity. An order
// left hanging past the expiry window is expired inline so the caller does not
// have to wait for the sweep.
func expireOrRejectInFlight(tx *gorm.DB, entityType string, entityID uuid.UUID) error {
	var existing models.PaymentOrder
	err := tx.Where("related_entity_type = ? AND related_entity_id = ? AND status = ?",
		entityType, entityID, models.OrderStatusCreated).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if time.Since(existing.CreatedAt) < orderExpiryWindow() {
		return ErrConflict("another payment order is already in flight for this entity")
	}

	return tx.Model(&models.PaymentOrder{}).
		Where("id = ? AND status = ?", existing.ID, models.OrderStatusCreated).
		Update("status", models.OrderStatusExpired).Error
}

// CreateOrder registers a charge with the external gateway and persists the
// tracking order. The gateway call happens before the transaction; the
// deterministic idempotency key makes a duplicate call converge on the same
// gateway order.
func CreateOrder(entityType string, entityID uuid.UUID, amount float64) (*models.PaymentOrder, error) {
	if entityType != models.EntityTypeBooking && entityType != models.EntityTypeDamageReport {
		return nil, ErrValidation("unknown payable entity type")
	}

	target, err := checkPayable(database.DB, entityType, entityID, amount, false)
	if err != nil {
		return nil, err
	}
	if err := expireOrRejectInFlight(database.DB, entityType, entityID); err != nil {
		return nil, err
	}

	idempotencyKey := OrderIdempotencyKey(entityType, entityID, amount, uuid.New())
	gatewayOrder, err := payments.CreateGatewayOrder(amount, target.Currency, idempotencyKey)
	if err != nil {
		log.Printf("🔥 Gateway order creation failed for %s %s: %v", entityType, entityID, err)
		return nil, ErrConflict("payment could not be initiated, please try again")
	}

	var order models.PaymentOrder
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := checkPayable(tx, entityType, entityID, amount, true); err != nil {
			return err
		}
		if err := expireOrRejectInFlight(tx, entityType, entityID); err != nil {
			return err
		}

		order = models.PaymentOrder{
			GatewayOrderID:    &gatewayOrder.ID,
			Amount:            amount,
			Currency:          target.Currency,
			RelatedEntityType: entityType,
			RelatedEntityID:   entityID,
			IdempotencyKey:    idempotencyKey,
			Status:            models.OrderStatusCreated,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// settleOrderTx flips the order to verified and marks the related entity paid
// in one atomic step. The conditional update keyed on the current status makes
// a duplicate or concurrent settlement a no-op.
func settleOrderTx(tx *gorm.DB, orderID uuid.UUID, gatewayTxnID *string) (bool, error) {
	updates := map[string]interface{}{"status": models.OrderStatusVerified}
	if gatewayTxnID != nil {
		updates["gateway_txn_id"] = *gatewayTxnID
	}

	result := tx.Model(&models.PaymentOrder{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusCreated).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	var order models.PaymentOrder
	if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
		return false, err
	}

	switch order.RelatedEntityType {
	case models.EntityTypeBooking:
		err := tx.Model(&models.Booking{}).
			Where("id = ?", order.RelatedEntityID).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"status":         models.BookingStatusConfirmed,
			}).Error
		if err != nil {
			return false, err
		}
	case models.EntityTypeDamageReport:
		err := tx.Model(&models.DamageReport{}).
			Where("id = ?", order.RelatedEntityID).
			Update("payment_status", models.PaymentStatusPaid).Error
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// VerifyPayment handles the signed gateway callback. A tampered signature
// fails the order and never touches the related entity; a valid one settles
// exactly once.
func VerifyPayment(orderID uuid.UUID, gatewayPaymentID, signature string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("payment order not found")
		}
		return nil, err
	}

	if order.Status == models.OrderStatusVerified {
		return &order, nil
	}
	if order.Status != models.OrderStatusCreated {
		return nil, ErrConflict("payment order is not awaiting verification")
	}
	if order.GatewayOrderID == nil {
		return nil, ErrConflict("payment order has no gateway order to verify against")
	}

	secret := config.Config("PAYMENT_GATEWAY_SECRET")
	if !payments.VerifySignature(*order.GatewayOrderID, gatewayPaymentID, signature, secret) {
		err := database.DB.Model(&models.PaymentOrder{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusCreated).
			Update("status", models.OrderStatusFailed).Error
		if err != nil {
			return nil, err
		}
		return nil, ErrPaymentVerification("payment signature could not be verified")
	}

	var settled bool
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		settled, txErr = settleOrderTx(tx, order.ID, &gatewayPaymentID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	if err := database.DB.First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, err
	}
	if settled {
		go finalizeSettlement(order)
	}
	return &order, nil
}

// CreateQrPayment opens the UPI QR rail for a booking. Test mode is only
// honored when the deployment explicitly enables it; it can never reach the
// real gateway.
func CreateQrPayment(userID, bookingID uuid.UUID, amount float64, testMode bool) (*models.UpiQrTransaction, error) {
	if testMode && !config.ConfigBool("UPI_TEST_MODE") {
		return nil, ErrValidation("test mode payments are disabled in this environment")
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("booking not found")
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotFound("booking not found")
	}

	target, err := checkPayable(database.DB, models.EntityTypeBooking, bookingID, amount, false)
	if err != nil {
		return nil, err
	}
	if err := expireOrRejectInFlight(database.DB, models.EntityTypeBooking, bookingID); err != nil {
		return nil, err
	}

	idempotencyKey := OrderIdempotencyKey(models.EntityTypeBooking, bookingID, amount, uuid.New())

	var gatewayOrderID *string
	if !testMode {
		gatewayOrder, err := payments.CreateGatewayOrder(amount, target.Currency, idempotencyKey)
		if err != nil {
			log.Printf("🔥 Gateway order creation failed for QR payment on booking %s: %v", bookingID, err)
			return nil, ErrConflict("payment could not be initiated, please try again")
		}
		gatewayOrderID = &gatewayOrder.ID
	}

	var txn models.UpiQrTransaction
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := checkPayable(tx, models.EntityTypeBooking, bookingID, amount, true); err != nil {
			return err
		}
		if err := expireOrRejectInFlight(tx, models.EntityTypeBooking, bookingID); err != nil {
			return err
		}

		order := models.PaymentOrder{
			GatewayOrderID:    gatewayOrderID,
			Amount:            amount,
			Currency:          target.Currency,
			RelatedEntityType: models.EntityTypeBooking,
			RelatedEntityID:   bookingID,
			IdempotencyKey:    idempotencyKey,
			Status:            models.OrderStatusCreated,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		ref, err := utils.GenerateTransactionRef(tx)
		if err != nil {
			return err
		}

		txn = models.UpiQrTransaction{
			TransactionRef: ref,
			UpiID:          config.Config("UPI_MERCHANT_VPA"),
			BookingID:      bookingID,
			PaymentOrderID: order.ID,
			Amount:         amount,
			TestMode:       testMode,
			Status:         models.UpiStatusCreated,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// ConfirmUpiPayment settles a QR transaction. In test mode the settlement is
// simulated; otherwise the gateway's view of the payment is checked first so
// the call never trusts bare client input.
func ConfirmUpiPayment(transactionRef, upiTransactionID string) (*models.UpiQrTransaction, error) {
	var txn models.UpiQrTransaction
	if err := database.DB.Where("transaction_ref = ?", transactionRef).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("UPI transaction not found")
		}
		return nil, err
	}

	if txn.Status == models.UpiStatusConfirmed {
		return &txn, nil
	}

	var order models.PaymentOrder
	if err := database.DB.First(&order, "id = ?", txn.PaymentOrderID).Error; err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusCreated {
		return nil, ErrConflict("payment order is not awaiting confirmation")
	}

	if txn.TestMode {
		if !config.ConfigBool("UPI_TEST_MODE") {
			return nil, ErrValidation("test mode payments are disabled in this environment")
		}
	} else {
		payment, err := payments.FetchGatewayPayment(upiTransactionID)
		if err != nil {
			log.Printf("🔥 Gateway lookup failed for UPI txn %s: %v", transactionRef, err)
			return nil, ErrPaymentVerification("payment could not be verified with the gateway")
		}
		if !payment.IsCaptured() || payment.Amount != txn.Amount {
			return nil, ErrPaymentVerification("gateway does not report this payment as captured")
		}
		if order.GatewayOrderID == nil || payment.OrderID != *order.GatewayOrderID {
			return nil, ErrPaymentVerification("payment does not belong to this order")
		}
	}

	var settled bool
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		settled, txErr = settleOrderTx(tx, order.ID, &upiTransactionID)
		if txErr != nil {
			return txErr
		}
		if !settled {
			return nil
		}
		return tx.Model(&models.UpiQrTransaction{}).
			Where("id = ? AND status = ?", txn.ID, models.UpiStatusCreated).
			Updates(map[string]interface{}{
				"status":             models.UpiStatusConfirmed,
				"upi_transaction_id": upiTransactionID,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := database.DB.Where("transaction_ref = ?", transactionRef).First(&txn).Error; err != nil {
		return nil, err
	}
	if settled {
		go finalizeSettlement(order)
	}
	return &txn, nil
}

// ExpireStaleOrders reverts orders that never saw a verification inside the
// expiry window, so a fresh order can be created. Run from cron.
func ExpireStaleOrders() (int64, error) {
	cutoff := time.Now().Add(-orderExpiryWindow())
	result := database.DB.Model(&models.PaymentOrder{}).
		Where("status = ? AND created_at < ?", models.OrderStatusCreated, cutoff).
		Update("status", models.OrderStatusExpired)
	return result.RowsAffected, result.Error
}

// finalizeSettlement runs the best-effort side effects of a settlement:
// receipt, email, websocket push. Failures here never unwind the settlement.
func finalizeSettlement(order models.PaymentOrder) {
	switch order.RelatedEntityType {
	case models.EntityTypeBooking:
		var booking models.Booking
		if err := database.DB.Preload("Car").Preload("User").First(&booking, "id = ?", order.RelatedEntityID).Error; err != nil {
			log.Printf("🔥 Failed to load booking %s after settlement: %v", order.RelatedEntityID, err)
			return
		}
		go notifications.SendEmail(booking.User.FullName, booking.User.Email,
			"Your Booking is Confirmed!",
			"<h1>Booking Confirmed</h1><p>Your payment was successful and your car is reserved. Your receipt will be available shortly.</p>")
		websocket.Notify(booking.UserID, websocket.Event{
			Type:     websocket.EventPaymentSettled,
			EntityID: booking.ID.String(),
			Status:   booking.Status,
		})
		GenerateBookingReceipt(booking.ID)

	case models.EntityTypeDamageReport:
		var report models.DamageReport
		if err := database.DB.Preload("User").First(&report, "id = ?", order.RelatedEntityID).Error; err != nil {
			log.Printf("🔥 Failed to load damage report %s after settlement: %v", order.RelatedEntityID, err)
			return
		}
		go notifications.SendEmail(report.User.FullName, report.User.Email,
			"Damage Claim Settled",
			"<h1>Claim Settled</h1><p>Your damage claim payment has been received. Thank you.</p>")
		websocket.Notify(report.UserID, websocket.Event{
			Type:     websocket.EventPaymentSettled,
			EntityID: report.ID.String(),
			Status:   report.Status,
		})
	}
}
