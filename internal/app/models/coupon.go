package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponUsage struct {
	UserID string `bson:"userId" json:"userId"`
	Used   int    `bson:"used" json:"used"`
}

// Coupon is a named discount instrument, single-use per user (not single-use
// globally). UsageHistory is only ever appended through an atomic conditional
// update keyed on the redeeming user.
type Coupon struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	Type         string             `bson:"type" json:"type"`
	Discount     float64            `bson:"discount" json:"discount"`
	UsageHistory []CouponUsage      `bson:"usageHistory" json:"usageHistory"`
	CurrentUses  int                `bson:"currentUses" json:"currentUses"`
	Active       bool               `bson:"active" json:"active"`
	Deleted      bool               `bson:"deleted" json:"deleted"`
}

// Snapshot returns the immutable view embedded into a booking.
func (c *Coupon) Snapshot(appliedDiscount float64) *CouponSnapshot {
	return &CouponSnapshot{
		ID:          c.ID.Hex(),
		DisplayName: c.DisplayName,
		Discount:    appliedDiscount,
		Type:        c.Type,
	}
}
