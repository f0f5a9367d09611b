package contracts

import (
	"context"

	"psymate-service/internal/app/models"
)

type CouponRepository interface {
	FindActiveByDisplayName(ctx context.Context, displayName string) (*models.Coupon, error)
	// RedeemForUser marks the coupon used by userID in one atomic update and
	// returns the coupon as it was before redemption. It fails when the user
	// already appears in the usage history.
	RedeemForUser(ctx context.Context, displayName, userID string) (*models.Coupon, error)
}
