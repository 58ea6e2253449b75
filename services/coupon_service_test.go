package services

import (
	"testing"

	"github.com/anjiri1684/car_rental/models"
)

func TestApplyPromotionFixed(t *testing.T) {
	promo := models.Promotion{
		Code:             "WELCOME50",
		Type:             models.PromotionTypeFixed,
		Value:            50,
		MaxDiscount:      50,
		MinBookingAmount: 500,
	}

	discount, err := ApplyPromotion(promo, 1200)
	if err != nil {
		t.Fatalf("ApplyPromotion() error = %v", err)
	}
	if discount != 50 {
		t.Errorf("discount = %v, want 50", discount)
	}
}

func TestApplyPromotionPercentageCapped(t *testing.T) {
	promo := models.Promotion{
		Code:             "WEEKEND10",
		Type:             models.PromotionTypePercentage,
		Value:            10,
		MaxDiscount:      400,
		MinBookingAmount: 1000,
	}

	// 10% of 3000 is under the cap.
	discount, err := ApplyPromotion(promo, 3000)
	if err != nil {
		t.Fatalf("ApplyPromotion() error = %v", err)
	}
	if discount != 300 {
		t.Errorf("discount = %v, want 300", discount)
	}

	// 10% of 9000 would be 900; the cap bounds it.
	discount, err = ApplyPromotion(promo, 9000)
	if err != nil {
		t.Fatalf("ApplyPromotion() error = %v", err)
	}
	if discount != 400 {
		t.Errorf("discount = %v, want cap of 400", discount)
	}
}

func TestApplyPromotionBelowMinimum(t *testing.T) {
	promo := models.Promotion{
		Code:             "WELCOME50",
		Type:             models.PromotionTypeFixed,
		Value:            50,
		MaxDiscount:      50,
		MinBookingAmount: 500,
	}

	_, err := ApplyPromotion(promo, 300)
	if err == nil {
		t.Fatal("expected an error for a booking below the minimum amount")
	}
	domainErr, ok := AsDomainError(err)
	if !ok {
		t.Fatalf("expected a domain error, got %v", err)
	}
	if domainErr.Code != ErrCodeMinimumNotMet {
		t.Errorf("code = %q, want %q", domainErr.Code, ErrCodeMinimumNotMet)
	}
}
