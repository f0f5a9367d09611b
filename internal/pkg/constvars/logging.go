package constvars

// zap field keys
const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingQueryParamsKey        = "query_params"
	LoggingResponseLengthKey     = "response_length"
	LoggingBookingIDKey          = "booking_id"
	LoggingPatientIDKey          = "patient_id"
	LoggingDoctorIDKey           = "doctor_id"
	LoggingEstablishmentIDKey    = "establishment_id"
	LoggingCouponKey             = "coupon"
	LoggingInvoiceIDKey          = "invoice_id"
	LoggingSlotKey               = "slot"
	LoggingQueueNameKey          = "queue_name"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingObjectNameKey         = "object_name"
	LoggingChannelKey            = "channel"
)
