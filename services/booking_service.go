package services

import (
	"errors"
	"time"

	config "github.com/anjiri1684/car_rental/configs"
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultTaxRatePercent = 12.0
	defaultDepositFlat    = 500.0
)

// ValidateBookingDates rejects inverted or past ranges before any DB work.
func ValidateBookingDates(startDate, endDate, now time.Time) error {
	if !endDate.After(startDate) {
		return ErrValidation("end date must be after start date")
	}
	if startDate.Before(now.Truncate(24 * time.Hour)) {
		return ErrValidation("start date cannot be in the past")
	}
	return nil
}

// CreateBooking reserves a car for [startDate, endDate). The availability
// check and the insert happen inside one transaction holding a row lock on
// the car, so two racing calls for overlapping ranges cannot both succeed.
// A promotion code that fails validation fails the whole call; a booking is
// never silently created at full price.
func CreateBooking(userID, carID uuid.UUID, startDate, endDate time.Time, promotionCode *string) (*models.Booking, error) {
	if err := ValidateBookingDates(startDate, endDate, time.Now()); err != nil {
		return nil, err
	}

	var car models.Car
	if err := database.DB.Where("id = ? AND is_active = ?", carID, true).First(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("car not found")
		}
		return nil, err
	}

	taxRate := config.ConfigFloat("TAX_RATE_PERCENT", defaultTaxRatePercent)
	deposit := config.ConfigFloat("BOOKING_DEPOSIT", defaultDepositFlat)

	days := RentalDays(startDate, endDate)
	baseFare := car.PricePerDay * float64(days)

	var discount float64
	var appliedCode *string
	if promotionCode != nil && *promotionCode != "" {
		coupon, err := ValidateCoupon(*promotionCode, baseFare)
		if err != nil {
			return nil, err
		}
		discount = coupon.Discount
		appliedCode = &coupon.Code
	}

	breakdown := ComputePrice(car.PricePerDay, startDate, endDate, taxRate, deposit, discount)

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&car, "id = ?", carID).Error; err != nil {
			return err
		}

		var overlapping int64
		err := tx.Model(&models.Booking{}).
			Where("car_id = ? AND status IN ? AND start_date < ? AND end_date > ?",
				carID, []string{models.BookingStatusPending, models.BookingStatusConfirmed}, endDate, startDate).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrConflict("car is unavailable for the requested dates")
		}

		booking = models.Booking{
			CarID:         carID,
			UserID:        userID,
			StartDate:     startDate,
			EndDate:       endDate,
			TotalPrice:    breakdown.Total,
			Discount:      breakdown.Discount,
			PromotionCode: appliedCode,
			Currency:      car.Currency,
			Status:        models.BookingStatusPending,
			PaymentStatus: models.PaymentStatusPending,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	booking.Car = car
	return &booking, nil
}

// CancelBooking releases the date range as long as no money has settled.
func CancelBooking(userID, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("booking not found")
			}
			return err
		}
		if booking.UserID != userID {
			return ErrNotFound("booking not found")
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			return ErrAlreadyPaid("a paid booking cannot be cancelled")
		}
		if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCompleted {
			return ErrConflict("booking is already " + booking.Status)
		}

		booking.Status = models.BookingStatusCancelled
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ApproveBooking is the admin policy hook for vehicles that require sign-off
// before an order can be created against the booking.
func ApproveBooking(bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("booking not found")
		}
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, ErrConflict("only pending bookings can be approved")
	}

	booking.AdminApproved = true
	if err := database.DB.Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// CompleteElapsedBookings moves confirmed bookings whose rental period has
// ended into the completed state. Run from cron.
func CompleteElapsedBookings() (int64, error) {
	result := database.DB.Model(&models.Booking{}).
		Where("status = ? AND end_date < ?", models.BookingStatusConfirmed, time.Now()).
		Update("status", models.BookingStatusCompleted)
	return result.RowsAffected, result.Error
}

// ReleaseStaleHolds cancels pending, unpaid bookings that have sat past the
// hold window with no live payment order, releasing their date ranges.
func ReleaseStaleHolds(holdWindow time.Duration) (int64, error) {
	cutoff := time.Now().Add(-holdWindow)

	liveOrders := database.DB.Model(&models.PaymentOrder{}).
		Select("related_entity_id").
		Where("related_entity_type = ? AND status = ?", models.EntityTypeBooking, models.OrderStatusCreated)

	result := database.DB.Model(&models.Booking{}).
		Where("status = ? AND payment_status = ? AND created_at < ?",
			models.BookingStatusPending, models.PaymentStatusPending, cutoff).
		Where("id NOT IN (?)", liveOrders).
		Update("status", models.BookingStatusCancelled)
	return result.RowsAffected, result.Error
}
