package pricing

import (
	"context"
	"fmt"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/exceptions"
	"sync"

	"go.uber.org/zap"
)

type pricingUsecase struct {
	CouponRepository contracts.CouponRepository
	Log              *zap.Logger
}

var (
	pricingUsecaseInstance contracts.PricingUsecase
	oncePricingUsecase     sync.Once
)

func NewPricingUsecase(couponRepository contracts.CouponRepository, logger *zap.Logger) contracts.PricingUsecase {
	oncePricingUsecase.Do(func() {
		pricingUsecaseInstance = &pricingUsecase{
			CouponRepository: couponRepository,
			Log:              logger,
		}
	})
	return pricingUsecaseInstance
}

func (uc *pricingUsecase) Price(ctx context.Context, request contracts.PriceRequest) (*contracts.PriceResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	totalBillAmount := request.BaseRatePerMinute * float64(request.DurationMinutes)

	uc.Log.Info("pricingUsecase.Price called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Float64("total_bill_amount", totalBillAmount),
		zap.String(constvars.LoggingCouponKey, request.CouponCode),
	)

	if request.CouponCode == "" {
		if request.AmountPaid > totalBillAmount {
			return nil, exceptions.ErrOverPayment(fmt.Errorf("paid %.2f exceeds payable %.2f", request.AmountPaid, totalBillAmount))
		}
		return &contracts.PriceResult{
			TotalBillAmount: totalBillAmount,
			Payable:         totalBillAmount,
		}, nil
	}

	coupon, err := uc.CouponRepository.FindActiveByDisplayName(ctx, request.CouponCode)
	if err != nil {
		uc.Log.Error("pricingUsecase.Price error fetching coupon",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if coupon == nil {
		return nil, exceptions.ErrCouponNotFound(fmt.Errorf("coupon %s not found", request.CouponCode))
	}

	for _, usage := range coupon.UsageHistory {
		if usage.UserID == request.UserID {
			return nil, exceptions.ErrCouponAlreadyUsed(fmt.Errorf("coupon %s already redeemed by user %s", request.CouponCode, request.UserID))
		}
	}

	var discount float64
	switch coupon.Type {
	case constvars.CouponTypePercentage:
		discount = coupon.Discount / 100 * totalBillAmount
	case constvars.CouponTypeFixed:
		discount = coupon.Discount
	}
	payable := totalBillAmount - discount

	// Overpayment is rejected before the coupon usage is committed so a
	// failed booking never burns the coupon.
	if request.AmountPaid > payable {
		return nil, exceptions.ErrOverPayment(fmt.Errorf("paid %.2f exceeds payable %.2f", request.AmountPaid, payable))
	}

	redeemed, err := uc.CouponRepository.RedeemForUser(ctx, request.CouponCode, request.UserID)
	if err != nil {
		uc.Log.Error("pricingUsecase.Price error redeeming coupon",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if redeemed == nil {
		return nil, exceptions.ErrCouponAlreadyUsed(fmt.Errorf("coupon %s already redeemed by user %s", request.CouponCode, request.UserID))
	}

	snapshot := redeemed.Snapshot(discount)

	uc.Log.Info("pricingUsecase.Price coupon applied",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCouponKey, request.CouponCode),
		zap.Float64("discount", discount),
		zap.Float64("payable", payable),
	)

	return &contracts.PriceResult{
		TotalBillAmount: totalBillAmount,
		Discount:        discount,
		Payable:         payable,
		Coupon:          snapshot,
	}, nil
}
