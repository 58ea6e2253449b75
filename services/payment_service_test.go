package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/payments"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB swaps the package-level connection for a sqlmock-backed one for
// the duration of the test.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}

	prev := database.DB
	database.DB = gdb
	t.Cleanup(func() {
		// Settlement side effects run on a goroutine that may outlive the
		// test; never leave a nil handle behind for it to trip on.
		if prev != nil {
			database.DB = prev
		}
		conn.Close()
	})
	return mock
}

func orderColumns() []string {
	return []string{
		"id", "gateway_order_id", "amount", "currency",
		"related_entity_type", "related_entity_id", "idempotency_key", "status",
		"created_at", "updated_at",
	}
}

func TestOrderIdempotencyKey(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	attempt := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")

	got := OrderIdempotencyKey("booking", id, 3860, attempt)
	want := "booking|6ba7b810-9dad-11d1-80b4-00c04fd430c8|3860.00|7d444840-9dc0-11d1-b245-5ffdce74fad2"
	if got != want {
		t.Errorf("OrderIdempotencyKey() = %q, want %q", got, want)
	}
}

func TestOrderIdempotencyKeyStableWithinAttempt(t *testing.T) {
	id := uuid.New()
	attempt := uuid.New()

	first := OrderIdempotencyKey("damage_report", id, 1250.5, attempt)
	second := OrderIdempotencyKey("damage_report", id, 1250.50, attempt)
	if first != second {
		t.Errorf("keys for equal amounts within one attempt differ: %q vs %q", first, second)
	}

	if first == OrderIdempotencyKey("damage_report", id, 1250.51, attempt) {
		t.Error("keys for different amounts must differ")
	}
	if first == OrderIdempotencyKey("damage_report", id, 1250.5, uuid.New()) {
		t.Error("a fresh attempt must produce a fresh key")
	}
}

func TestSettleOrderExactlyOnce(t *testing.T) {
	mock := newMockDB(t)

	orderID := uuid.New()
	bookingID := uuid.New()
	txnID := "pay_settle_1"

	// First delivery flips the order and settles the booking.
	mock.ExpectExec(`UPDATE "payment_orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "payment_orders"`).
		WillReturnRows(sqlmock.NewRows(orderColumns()).AddRow(
			orderID.String(), "order_gw_1", 3860.0, "INR",
			models.EntityTypeBooking, bookingID.String(), "key", models.OrderStatusVerified,
			time.Now(), time.Now(),
		))
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	settled, err := settleOrderTx(database.DB, orderID, &txnID)
	if err != nil {
		t.Fatalf("first settlement error: %v", err)
	}
	if !settled {
		t.Fatal("first delivery must settle the order")
	}

	// Duplicate delivery: the conditional update matches no row, so the
	// related entity is never touched again.
	mock.ExpectExec(`UPDATE "payment_orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	settled, err = settleOrderTx(database.DB, orderID, &txnID)
	if err != nil {
		t.Fatalf("duplicate settlement error: %v", err)
	}
	if settled {
		t.Fatal("duplicate delivery must be a no-op")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyPaymentAlreadyVerifiedIsNoOp(t *testing.T) {
	mock := newMockDB(t)

	orderID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "payment_orders"`).
		WillReturnRows(sqlmock.NewRows(orderColumns()).AddRow(
			orderID.String(), "order_gw_1", 3860.0, "INR",
			models.EntityTypeBooking, uuid.New().String(), "key", models.OrderStatusVerified,
			time.Now(), time.Now(),
		))

	order, err := VerifyPayment(orderID, "pay_dup", "any-signature")
	if err != nil {
		t.Fatalf("VerifyPayment() error = %v", err)
	}
	if order.Status != models.OrderStatusVerified {
		t.Errorf("status = %q, want %q", order.Status, models.OrderStatusVerified)
	}

	// No update and no settlement may run for an already verified order.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyPaymentTamperedSignature(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_SECRET", "test_webhook_secret")
	mock := newMockDB(t)

	orderID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "payment_orders"`).
		WillReturnRows(sqlmock.NewRows(orderColumns()).AddRow(
			orderID.String(), "order_gw_1", 3860.0, "INR",
			models.EntityTypeBooking, uuid.New().String(), "key", models.OrderStatusCreated,
			time.Now(), time.Now(),
		))
	// The order is failed; the booking is never touched.
	mock.ExpectExec(`UPDATE "payment_orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := VerifyPayment(orderID, "pay_xyz789", "0000deadbeef")
	if err == nil {
		t.Fatal("expected a verification error for a tampered signature")
	}
	domainErr, ok := AsDomainError(err)
	if !ok || domainErr.Code != ErrCodePaymentVerification {
		t.Errorf("error = %v, want code %q", err, ErrCodePaymentVerification)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyPaymentValidSignatureSettles(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_SECRET", "test_webhook_secret")
	mock := newMockDB(t)

	orderID := uuid.New()
	signature := payments.ComputeSignature("order_gw_1", "pay_xyz789", "test_webhook_secret")

	row := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows(orderColumns()).AddRow(
			orderID.String(), "order_gw_1", 3860.0, "INR",
			models.EntityTypeDamageReport, uuid.New().String(), "key", status,
			time.Now(), time.Now(),
		)
	}

	mock.ExpectQuery(`SELECT \* FROM "payment_orders"`).WillReturnRows(row(models.OrderStatusCreated))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payment_orders" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "payment_orders"`).WillReturnRows(row(models.OrderStatusVerified))
	mock.ExpectExec(`UPDATE "damage_reports" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "payment_orders"`).WillReturnRows(row(models.OrderStatusVerified))

	order, err := VerifyPayment(orderID, "pay_xyz789", signature)
	if err != nil {
		t.Fatalf("VerifyPayment() error = %v", err)
	}
	if order.Status != models.OrderStatusVerified {
		t.Errorf("status = %q, want %q", order.Status, models.OrderStatusVerified)
	}
}
