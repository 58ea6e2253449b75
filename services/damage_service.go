package services

import (
	"errors"
	"log"

	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/inference"
	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/notifications"
	"github.com/anjiri1684/car_rental/websocket"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitDamageReport files a claim against a confirmed rental. The AI estimate
// is best effort: if the inference service is down the report is still created
// without one.
func SubmitDamageReport(userID, bookingID uuid.UUID, images []string, description string) (*models.DamageReport, error) {
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
	if booking.Status != models.BookingStatusConfirmed {
		return nil, ErrConflict("damage can only be reported against a confirmed booking")
	}

	report := models.DamageReport{
		BookingID:     bookingID,
		CarID:         booking.CarID,
		UserID:        userID,
		Images:        images,
		Description:   description,
		Status:        models.DamageStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	estimate, err := inference.EstimateDamage(images, description)
	if err != nil {
		log.Printf("Damage estimate unavailable for booking %s: %v", bookingID, err)
	} else if estimate != nil {
		report.AiDamageType = &estimate.DamageType
		report.AiSeverity = &estimate.Severity
		report.AiEstimatedCost = &estimate.EstimatedCost
		report.AiDescription = &estimate.Description
	}

	if err := database.DB.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// MarkUnderReview moves a fresh report into the admin review queue.
func MarkUnderReview(reportID uuid.UUID) (*models.DamageReport, error) {
	var report models.DamageReport
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("damage report not found")
			}
			return err
		}
		if report.Status != models.DamageStatusPending {
			return ErrConflict("only pending reports can be marked under review")
		}
		report.Status = models.DamageStatusUnderReview
		return tx.Save(&report).Error
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ApproveDamageReport decides a claim and fixes its cost. The actual cost is
// written exactly once, here; it is immutable afterwards.
func ApproveDamageReport(reportID uuid.UUID, actualCost float64, notes string) (*models.DamageReport, error) {
	if actualCost <= 0 {
		return nil, ErrValidation("actual cost must be greater than zero")
	}

	var report models.DamageReport
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("damage report not found")
			}
			return err
		}
		if report.Status != models.DamageStatusPending && report.Status != models.DamageStatusUnderReview {
			return ErrConflict("damage report has already been decided")
		}

		report.Status = models.DamageStatusApproved
		report.ActualCost = &actualCost
		report.AdminNotes = &notes
		report.PaymentStatus = models.PaymentStatusPending
		return tx.Save(&report).Error
	})
	if err != nil {
		return nil, err
	}

	go notifyDamageDecision(report, "Damage Claim Approved",
		"<h1>Claim Approved</h1><p>Your damage report has been reviewed and approved. Please settle the assessed cost from your dashboard.</p>")
	return &report, nil
}

// RejectDamageReport closes a claim with no cost and no payment.
func RejectDamageReport(reportID uuid.UUID, notes string) (*models.DamageReport, error) {
	var report models.DamageReport
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("damage report not found")
			}
			return err
		}
		if report.Status != models.DamageStatusPending && report.Status != models.DamageStatusUnderReview {
			return ErrConflict("damage report has already been decided")
		}

		report.Status = models.DamageStatusRejected
		report.AdminNotes = &notes
		return tx.Save(&report).Error
	})
	if err != nil {
		return nil, err
	}

	go notifyDamageDecision(report, "Damage Claim Update",
		"<h1>Claim Rejected</h1><p>After review, your damage report was not approved. See the admin notes for details.</p>")
	return &report, nil
}

func notifyDamageDecision(report models.DamageReport, subject, body string) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", report.UserID).Error; err != nil {
		log.Printf("Failed to load user %s for damage notification: %v", report.UserID, err)
		return
	}
	notifications.SendEmail(user.FullName, user.Email, subject, body)
	websocket.Notify(report.UserID, websocket.Event{
		Type:     websocket.EventDamageDecided,
		EntityID: report.ID.String(),
		Status:   report.Status,
	})
}
