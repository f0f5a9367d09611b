package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           = contextKey("requestID")
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY = contextKey("isClientRequestID")
)

// Mongo collections
const (
	MongoCollectionAppointments   = "appointments"
	MongoCollectionSessions       = "sessions"
	MongoCollectionCoupons        = "coupons"
	MongoCollectionOrders         = "orders"
	MongoCollectionTimelines      = "timelines"
	MongoCollectionUsers          = "users"
	MongoCollectionEstablishments = "establishments"
)

// Booking statuses
const (
	BookingStatusScheduled = "scheduled"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Order payment statuses
const (
	OrderStatusPaid = "Paid"
	OrderStatusDue  = "Due"
)

// Coupon discount types
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Timeline entry types and titles
const (
	TimelineTypeAppointment            = "appointment"
	TimelineTitleAppointment           = "Appointment"
	TimelineTitleAppointmentReschedule = "Appointment Reschedule"
	TimelineTitleAppointmentCancelled  = "Appointment Cancelled"
)

// Order line item defaults
const (
	OrderItemNameAppointment = "Psychiatry Appointment"
	OrderItemCategory        = "appointment"
	OrderItemTypeService     = "service"
	OrderTypeAppointment     = "appointment"
	DefaultPaymentCurrency   = "₹"
)

// Object storage folders
const (
	StorageFolderInvoices = "invoices"
	StorageFolderVisits   = "visits"
)

// WhatsApp template names
const (
	WhatsAppTemplateInvoiceWithPDF     = "invoice_with_pdf"
	WhatsAppTemplateBookAppointment    = "book_appointment_with_pdf"
	WhatsAppTemplateRescheduleBooking  = "appointment_reschedule"
	WhatsAppTemplateCancellationNotice = "appointment_cancellation"
)

// Virtual establishments resolve the visit location to the doctor's meet link.
const VirtualEstablishmentName = "Psymate Virtual"

const (
	DefaultTimezone = "Asia/Kolkata"

	SlotTimeFormat = "15:04"
	SlotDateFormat = "2006-01-02"
)

// Accepted start-time layouts, tried in order. time.RFC3339 stands in for the
// ISO-8601 profile the API has always accepted.
var AcceptedStartTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
}
