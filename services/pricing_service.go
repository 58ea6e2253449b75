package services

import (
	"math"
	"time"
)

type PriceBreakdown struct {
	Days      int     `json:"days"`
	BaseFare  float64 `json:"base_fare"`
	TaxesFees float64 `json:"taxes_fees"`
	Deposit   float64 `json:"deposit"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

// RentalDays charges any started day in full and never less than one day.
func RentalDays(startDate, endDate time.Time) int {
	days := int(math.Ceil(endDate.Sub(startDate).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// ComputePrice is deterministic and side effect free; identical inputs always
// produce the identical breakdown.
func ComputePrice(pricePerDay float64, startDate, endDate time.Time, taxRatePercent, depositFlat, discount float64) PriceBreakdown {
	days := RentalDays(startDate, endDate)
	baseFare := pricePerDay * float64(days)
	taxesFees := math.Round(baseFare * taxRatePercent / 100)

	total := baseFare + taxesFees + depositFlat - discount
	if total < 0 {
		total = 0
	}

	return PriceBreakdown{
		Days:      days,
		BaseFare:  baseFare,
		TaxesFees: taxesFees,
		Deposit:   depositFlat,
		Discount:  discount,
		Total:     total,
	}
}
