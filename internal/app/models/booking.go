package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PartySnapshot freezes the patient or doctor contact details at booking time
// so later profile edits never rewrite history.
type PartySnapshot struct {
	ID          string `bson:"_id" json:"_id"`
	DisplayName string `bson:"displayName" json:"displayName"`
	Email       string `bson:"email" json:"email"`
	Phone       string `bson:"phone" json:"phone"`
	PsyID       string `bson:"psyID,omitempty" json:"psyID,omitempty"`
}

type EstablishmentSnapshot struct {
	ID          string `bson:"_id" json:"_id"`
	DisplayName string `bson:"displayName" json:"displayName"`
	Phone       string `bson:"phone" json:"phone"`
	Email       string `bson:"email" json:"email"`
}

type CouponSnapshot struct {
	ID          string  `bson:"_id" json:"_id"`
	DisplayName string  `bson:"displayName" json:"displayName"`
	Discount    float64 `bson:"discount" json:"discount"`
	Type        string  `bson:"type" json:"type"`
}

type PaymentRecord struct {
	AmtPaid  float64 `bson:"amtPaid" json:"amtPaid"`
	Currency string  `bson:"currency" json:"currency"`
	Discount float64 `bson:"discount" json:"discount"`
	Mode     string  `bson:"mode,omitempty" json:"mode,omitempty"`
}

// Booking is the appointment document. StartTime/EndTime are UTC instants and
// always satisfy EndTime == StartTime + Duration minutes. Cancellation is a
// soft delete: Deleted bookings never participate in conflict checks.
type Booking struct {
	ID              primitive.ObjectID    `bson:"_id,omitempty" json:"_id,omitempty"`
	BookingID       string                `bson:"bookingId" json:"bookingId"`
	Patient         PartySnapshot         `bson:"patient" json:"patient"`
	Doctor          PartySnapshot         `bson:"doctor" json:"doctor"`
	Establishment   EstablishmentSnapshot `bson:"establishment" json:"establishment"`
	StartTime       time.Time             `bson:"startTime" json:"startTime"`
	EndTime         time.Time             `bson:"endTime" json:"endTime"`
	Duration        int                   `bson:"duration" json:"duration"`
	Slot            string                `bson:"slot" json:"slot"`
	AppointmentDate string                `bson:"appointmentDate" json:"appointmentDate"`
	Status          string                `bson:"status" json:"status"`
	Deleted         bool                  `bson:"deleted" json:"deleted"`
	DueAmount       float64               `bson:"dueAmount" json:"dueAmount"`
	Coupon          *CouponSnapshot       `bson:"coupon,omitempty" json:"coupon,omitempty"`
	Payment         []PaymentRecord       `bson:"payment" json:"payment"`
	CreatedAt       time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// AmountPaid sums every payment record attached to the booking.
func (b *Booking) AmountPaid() float64 {
	var total float64
	for _, payment := range b.Payment {
		total += payment.AmtPaid
	}
	return total
}
