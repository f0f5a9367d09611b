package responses

import "psymate-service/internal/app/models"

// CreatedBooking is the POST /booking payload: the stored appointment plus
// its derived order, returned before any notification work begins.
type CreatedBooking struct {
	Appointment *models.Booking `json:"appointment"`
	Order       *models.Order   `json:"order"`
}

// BookingDetail is the GET /booking?appointmentId= payload.
type BookingDetail struct {
	Appointment      *models.Booking   `json:"appointment"`
	RelatedOrder     *models.Order     `json:"relatedOrder,omitempty"`
	RelatedTimelines []models.Timeline `json:"relatedTimelines"`
}
