package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process request"
	ErrClientSomethingWrongWithApplication = "something wrong with the application"
	ErrClientServerLongRespond             = "server takes too long to respond"

	ErrClientInvalidTimeFormat    = "invalid date or time format"
	ErrClientPatientNotFound      = "no valid patient found"
	ErrClientDoctorNotFound       = "no valid doctor found"
	ErrClientEstablishmentMissing = "no valid establishment found"
	ErrClientBookingNotFound      = "appointment not found"
	ErrClientBookingCancelledGone = "appointment not found or cancelled"
	ErrClientMissingBookingID     = "appointment id is required"

	ErrClientDoctorUnavailableFmt = "doctor is not available on %s"
	ErrClientSlotOutsideSessions  = "requested slot is not available in the doctor's schedule"
	ErrClientSlotConflictFmt      = "appointment slot is already booked or conflicting at %s for %s"
	ErrClientSlotBeingBooked      = "appointment slot is being booked by someone else, please try again"

	ErrClientCouponNotFound   = "coupon not found or is expired"
	ErrClientCouponUsed       = "coupon already used"
	ErrClientPaidExceedsTotal = "paid amount cannot be greater than the total amount"

	ErrClientRescheduleNotOwner = "you are not authorized to reschedule this appointment"
)

// Error messages for developers
const (
	ErrDevValidationFailed          = "request validation failed"
	ErrDevCannotParseJSON           = "cannot parse JSON request body"
	ErrDevCannotParseStartTime      = "start time does not match any accepted layout"
	ErrDevMissingRequestID          = "request id not found in request context"
	ErrDevInvalidTimezone           = "timezone header is not a valid IANA zone"
	ErrDevPatientNotFound           = "patient document not found"
	ErrDevDoctorNotFound            = "doctor document not found"
	ErrDevEstablishmentNotFound     = "establishment document not found"
	ErrDevBookingNotFound           = "appointment document not found"
	ErrDevBookingAlreadyCancelled   = "appointment already cancelled or deleted"
	ErrDevMissingBookingID          = "appointment id missing from query and body"
	ErrDevNoSessionForWeekday       = "no session covers the requested weekday"
	ErrDevStartOutsideSessionWindow = "start instant outside every session window"
	ErrDevSlotConflict              = "candidate interval overlaps an existing appointment"
	ErrDevSlotLockContention        = "slot lock already held for this doctor and establishment"
	ErrDevCouponNotFound            = "no active coupon with that display name"
	ErrDevCouponAlreadyRedeemed     = "usage history already has an entry for this user"
	ErrDevOverPayment               = "amount paid exceeds payable amount"
	ErrDevRescheduleNotOwner        = "requesting patient does not match stored patient"

	ErrDevDBFailedToFindDocument    = "database failed to find document"
	ErrDevDBFailedToInsertDocument  = "database failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "database failed to update document"
	ErrDevDBFailedToDeleteDocument  = "database failed to delete document"
	ErrDevDBFailedToIterateDocument = "database failed to iterate documents"
	ErrDevDBFailedToCountDocuments  = "database failed to count documents"
	ErrDevDBStringNotObjectID       = "string is not a valid object id"

	ErrDevRedisSetData = "redis failed to set data"
	ErrDevRedisGetData = "redis failed to get data"
	ErrDevRedisDelData = "redis failed to delete data"

	ErrDevRabbitMQPublish    = "rabbitmq failed to publish message to queue %s"
	ErrDevMinioCreateObject  = "minio failed to create object in bucket %s"
	ErrDevSMTPSendEmail      = "smtp failed to send email through host %s"
	ErrDevRenderPDF          = "renderer failed to produce PDF"
	ErrDevCreateHTTPRequest  = "failed to create http request"
	ErrDevSendHTTPRequest    = "failed to send http request"
	ErrDevServerDeadline     = "server deadline exceeded"
	ErrDevTemplateExecution  = "html template execution failed"
	ErrDevCannotMarshalJSON  = "cannot marshal payload to JSON"
	ErrDevNotificationFailed = "post-booking notification pipeline failed"
)
