package requests

type PaymentEntry struct {
	AmtPaid  float64 `json:"amtPaid"`
	Currency string  `json:"currency,omitempty"`
	Discount float64 `json:"discount,omitempty"`
	Mode     string  `json:"mode,omitempty"`
}

type CreateBookingRequest struct {
	Patient         string         `json:"patient" validate:"required"`
	DoctorID        string         `json:"doctorId" validate:"required"`
	EstablishmentID string         `json:"establishmentId" validate:"required"`
	StartTime       string         `json:"startTime" validate:"required"`
	Duration        int            `json:"duration" validate:"required,gt=0"`
	Coupon          string         `json:"coupon,omitempty"`
	Payment         []PaymentEntry `json:"payment"`
}

// AmountPaid sums the amtPaid of every supplied payment entry.
func (r *CreateBookingRequest) AmountPaid() float64 {
	var total float64
	for _, entry := range r.Payment {
		total += entry.AmtPaid
	}
	return total
}

type RescheduleBookingRequest struct {
	Patient         string `json:"patient" validate:"required"`
	DoctorID        string `json:"doctorId" validate:"required"`
	EstablishmentID string `json:"establishmentId" validate:"required"`
	StartTime       string `json:"startTime" validate:"required"`
	Duration        int    `json:"duration" validate:"required,gt=0"`
}

type CancelBookingRequest struct {
	ID string `json:"id"`
}
