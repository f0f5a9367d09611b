package contracts

import (
	"context"

	"psymate-service/internal/app/models"
)

type PriceRequest struct {
	BaseRatePerMinute float64
	DurationMinutes   int
	CouponCode        string
	UserID            string
	AmountPaid        float64
}

type PriceResult struct {
	TotalBillAmount float64
	Discount        float64
	Payable         float64
	Coupon          *models.CouponSnapshot
}

type PricingUsecase interface {
	// Price computes the bill for a booking and, when a coupon code is
	// supplied, redeems it for the user. Overpayment is rejected before any
	// coupon state is touched.
	Price(ctx context.Context, request PriceRequest) (*PriceResult, error)
}
