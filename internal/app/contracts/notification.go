package contracts

import "psymate-service/internal/app/models"

// NotificationDispatcher runs the post-booking document and messaging work.
// Dispatch methods return immediately; delivery happens in the background and
// failures never affect the booking that triggered them.
type NotificationDispatcher interface {
	BookingCreated(booking *models.Booking, order *models.Order)
	BookingRescheduled(booking *models.Booking, previousSlot, previousDate string)
	BookingCancelled(booking *models.Booking)
}
