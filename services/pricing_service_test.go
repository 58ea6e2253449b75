package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"three full days", date(2026, 3, 1), date(2026, 3, 4), 3},
		{"partial day rounds up", date(2026, 3, 1), date(2026, 3, 2).Add(6 * time.Hour), 2},
		{"same day charges one day", date(2026, 3, 1), date(2026, 3, 1).Add(3 * time.Hour), 1},
		{"exactly one day", date(2026, 3, 1), date(2026, 3, 2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RentalDays(tt.start, tt.end); got != tt.want {
				t.Errorf("RentalDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputePrice(t *testing.T) {
	start := date(2026, 3, 1)
	end := date(2026, 3, 4)

	breakdown := ComputePrice(1000, start, end, 12, 500, 0)

	if breakdown.Days != 3 {
		t.Errorf("Days = %d, want 3", breakdown.Days)
	}
	if breakdown.BaseFare != 3000 {
		t.Errorf("BaseFare = %v, want 3000", breakdown.BaseFare)
	}
	if breakdown.TaxesFees != 360 {
		t.Errorf("TaxesFees = %v, want 360", breakdown.TaxesFees)
	}
	if breakdown.Deposit != 500 {
		t.Errorf("Deposit = %v, want 500", breakdown.Deposit)
	}
	if breakdown.Total != 3860 {
		t.Errorf("Total = %v, want 3860", breakdown.Total)
	}
}

func TestComputePriceWithDiscount(t *testing.T) {
	start := date(2026, 3, 1)
	end := date(2026, 3, 4)

	breakdown := ComputePrice(1000, start, end, 12, 500, 400)
	if breakdown.Discount != 400 {
		t.Errorf("Discount = %v, want 400", breakdown.Discount)
	}
	if breakdown.Total != 3460 {
		t.Errorf("Total = %v, want 3460", breakdown.Total)
	}
}

func TestComputePriceNeverNegative(t *testing.T) {
	start := date(2026, 3, 1)
	end := date(2026, 3, 2)

	breakdown := ComputePrice(100, start, end, 0, 0, 10000)
	if breakdown.Total != 0 {
		t.Errorf("Total = %v, want 0 when discount exceeds the charge", breakdown.Total)
	}
}

func TestComputePriceDeterministic(t *testing.T) {
	start := date(2026, 6, 10)
	end := date(2026, 6, 15)

	first := ComputePrice(2750, start, end, 12, 500, 125)
	for i := 0; i < 50; i++ {
		if got := ComputePrice(2750, start, end, 12, 500, 125); got != first {
			t.Fatalf("breakdown changed between identical calls: %+v vs %+v", got, first)
		}
	}
}
