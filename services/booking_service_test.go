package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anjiri1684/car_rental/models"
	"github.com/google/uuid"
)

func bookingColumns() []string {
	return []string{
		"id", "car_id", "user_id", "start_date", "end_date",
		"total_price", "discount", "currency", "status", "payment_status", "admin_approved",
	}
}

func TestCancelBookingAlreadyPaid(t *testing.T) {
	mock := newMockDB(t)

	userID := uuid.New()
	bookingID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(bookingColumns()).AddRow(
			bookingID.String(), uuid.New().String(), userID.String(),
			date(2026, 3, 12), date(2026, 3, 15),
			3860.0, 0.0, "INR", models.BookingStatusConfirmed, models.PaymentStatusPaid, false,
		))
	mock.ExpectRollback()

	_, err := CancelBooking(userID, bookingID)
	if err == nil {
		t.Fatal("expected cancelling a paid booking to fail")
	}
	domainErr, ok := AsDomainError(err)
	if !ok || domainErr.Code != ErrCodeAlreadyPaid {
		t.Errorf("error = %v, want code %q", err, ErrCodeAlreadyPaid)
	}

	// The transaction rolled back; no update ever ran against the booking.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingOverlapConflict(t *testing.T) {
	mock := newMockDB(t)

	carID := uuid.New()
	carRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "make", "model", "year", "category", "price_per_day", "currency",
			"requires_approval", "is_active",
		}).AddRow(carID.String(), "Hyundai", "Creta", 2024, "suv", 3200.0, "INR", false, true)
	}

	mock.ExpectQuery(`SELECT \* FROM "cars"`).WillReturnRows(carRow())
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cars" WHERE id = .* FOR UPDATE`).WillReturnRows(carRow())
	// A pending/confirmed booking already holds an overlapping range.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := CreateBooking(uuid.New(), carID,
		date(2027, 3, 12), date(2027, 3, 15), nil)
	if err == nil {
		t.Fatal("expected an overlapping booking to be rejected")
	}
	domainErr, ok := AsDomainError(err)
	if !ok || domainErr.Code != ErrCodeConflict {
		t.Errorf("error = %v, want code %q", err, ErrCodeConflict)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateBookingDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valid future range", date(2026, 3, 12), date(2026, 3, 15), false},
		{"starts today", date(2026, 3, 10), date(2026, 3, 11), false},
		{"end before start", date(2026, 3, 15), date(2026, 3, 12), true},
		{"zero length range", date(2026, 3, 12), date(2026, 3, 12), true},
		{"start in the past", date(2026, 3, 8), date(2026, 3, 12), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookingDates(tt.start, tt.end, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBookingDates() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if domainErr, ok := AsDomainError(err); !ok || domainErr.Code != ErrCodeValidation {
					t.Errorf("expected a validation domain error, got %v", err)
				}
			}
		})
	}
}
