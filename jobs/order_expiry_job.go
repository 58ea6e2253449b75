package jobs

import (
	"log"
	"time"

	config "github.com/anjiri1684/car_rental/configs"
	"github.com/anjiri1684/car_rental/services"
)

// ExpireStaleOrders reverts payment orders that never saw a verification
// inside the expiry window, so a fresh order can be created for the entity.
func ExpireStaleOrders() {
	log.Println("Running job: ExpireStaleOrders...")

	expired, err := services.ExpireStaleOrders()
	if err != nil {
		log.Printf("Error expiring stale payment orders: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("Expired %d stale payment order(s).", expired)
	}
}

// ReleaseStaleHolds cancels pending unpaid bookings that outlived the hold
// window without a live payment order, releasing their date ranges.
func ReleaseStaleHolds() {
	log.Println("Running job: ReleaseStaleHolds...")

	holdMinutes := config.ConfigInt("BOOKING_HOLD_MINUTES", 60)
	released, err := services.ReleaseStaleHolds(time.Duration(holdMinutes) * time.Minute)
	if err != nil {
		log.Printf("Error releasing stale booking holds: %v", err)
		return
	}
	if released > 0 {
		log.Printf("Released %d stale booking hold(s).", released)
	}
}
