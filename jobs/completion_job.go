package jobs

import (
	"log"

	"github.com/anjiri1684/car_rental/services"
)

// CompleteElapsedBookings moves confirmed bookings past their return date
// into the completed state.
func CompleteElapsedBookings() {
	log.Println("Running job: CompleteElapsedBookings...")

	completed, err := services.CompleteElapsedBookings()
	if err != nil {
		log.Printf("Error completing elapsed bookings: %v", err)
		return
	}
	if completed > 0 {
		log.Printf("Marked %d booking(s) as completed.", completed)
	}
}
