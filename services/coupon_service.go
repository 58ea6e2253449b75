package services

import (
	"errors"
	"strings"

	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"gorm.io/gorm"
)

type CouponResult struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// ApplyPromotion computes the discount a promotion grants against a base
// amount. It never mutates the promotion.
func ApplyPromotion(promotion models.Promotion, baseAmount float64) (float64, error) {
	if baseAmount < promotion.MinBookingAmount {
		return 0, ErrMinimumNotMet("booking amount is below the minimum for this code")
	}

	var discount float64
	if promotion.Type == models.PromotionTypePercentage {
		discount = baseAmount * promotion.Value / 100
	} else {
		discount = promotion.Value
	}
	if discount > promotion.MaxDiscount {
		discount = promotion.MaxDiscount
	}
	return discount, nil
}

// ValidateCoupon resolves an active promotion by code and returns the bounded
// discount it yields for baseAmount.
func ValidateCoupon(code string, baseAmount float64) (*CouponResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrInvalidCode("promotion code is required")
	}

	var promotion models.Promotion
	err := database.DB.Where("code = ? AND active = ?", code, true).First(&promotion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode("no active promotion matches this code")
		}
		return nil, err
	}

	discount, err := ApplyPromotion(promotion, baseAmount)
	if err != nil {
		return nil, err
	}

	return &CouponResult{Code: promotion.Code, Discount: discount}, nil
}
