package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	GetBookingSuccessMessage        = "appointments retrieved successfully"
	GetBookingDetailSuccessMessage  = "appointment detail retrieved successfully"
	NoBookingsForUserMessage        = "no appointments found for this user"
	CreateBookingSuccessMessage     = "appointment created successfully"
	RescheduleBookingSuccessMessage = "appointment rescheduled successfully"
	CancelBookingSuccessMessage     = "appointment canceled successfully"
)
