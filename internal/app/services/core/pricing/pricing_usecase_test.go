package pricing

import (
	"context"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeCouponRepository struct {
	coupon      *models.Coupon
	redeemCalls int
}

func (f *fakeCouponRepository) FindActiveByDisplayName(ctx context.Context, displayName string) (*models.Coupon, error) {
	if f.coupon == nil || f.coupon.DisplayName != displayName {
		return nil, nil
	}
	return f.coupon, nil
}

func (f *fakeCouponRepository) RedeemForUser(ctx context.Context, displayName, userID string) (*models.Coupon, error) {
	f.redeemCalls++
	if f.coupon == nil || f.coupon.DisplayName != displayName {
		return nil, nil
	}
	for _, usage := range f.coupon.UsageHistory {
		if usage.UserID == userID {
			return nil, nil
		}
	}
	before := *f.coupon
	f.coupon.UsageHistory = append(f.coupon.UsageHistory, models.CouponUsage{UserID: userID, Used: 1})
	f.coupon.CurrentUses++
	return &before, nil
}

func newPricingUsecase(repo *fakeCouponRepository) *pricingUsecase {
	return &pricingUsecase{
		CouponRepository: repo,
		Log:              zap.NewNop(),
	}
}

func activeCoupon(couponType string, discount float64) *models.Coupon {
	return &models.Coupon{
		ID:          primitive.NewObjectID(),
		DisplayName: "WELCOME10",
		Type:        couponType,
		Discount:    discount,
		Active:      true,
	}
}

func TestPrice(t *testing.T) {
	t.Run("no coupon bills rate times duration", func(t *testing.T) {
		uc := newPricingUsecase(&fakeCouponRepository{})
		result, err := uc.Price(context.Background(), contracts.PriceRequest{
			BaseRatePerMinute: 50,
			DurationMinutes:   30,
			AmountPaid:        1500,
		})
		assert.NoError(t, err)
		assert.Equal(t, 1500.0, result.TotalBillAmount)
		assert.Equal(t, 1500.0, result.Payable)
		assert.Equal(t, 0.0, result.Discount)
		assert.Nil(t, result.Coupon)
	})

	t.Run("percentage coupon", func(t *testing.T) {
		repo := &fakeCouponRepository{coupon: activeCoupon(constvars.CouponTypePercentage, 10)}
		uc := newPricingUsecase(repo)
		result, err := uc.Price(context.Background(), contracts.PriceRequest{
			BaseRatePerMinute: 50,
			DurationMinutes:   30,
			CouponCode:        "WELCOME10",
			UserID:            "user-1",
			AmountPaid:        0,
		})
		assert.NoError(t, err)
		assert.Equal(t, 1500.0, result.TotalBillAmount)
		assert.Equal(t, 150.0, result.Discount)
		assert.Equal(t, 1350.0, result.Payable)
		assert.NotNil(t, result.Coupon)
		assert.Equal(t, "WELCOME10", result.Coupon.DisplayName)
		assert.Equal(t, 1, repo.redeemCalls)
	})

	t.Run("fixed coupon", func(t *testing.T) {
		repo := &fakeCouponRepository{coupon: activeCoupon(constvars.CouponTypeFixed, 200)}
		uc := newPricingUsecase(repo)
		result, err := uc.Price(context.Background(), contracts.PriceRequest{
			BaseRatePerMinute: 50,
			DurationMinutes:   30,
			CouponCode:        "WELCOME10",
			UserID:            "user-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, 200.0, result.Discount)
		assert.Equal(t, 1300.0, result.Payable)
	})

	t.Run("unknown coupon", func(t *testing.T) {
		uc := newPricingUsecase(&fakeCouponRepository{})
		_, err := uc.Price(context.Background(), contracts.PriceRequest{
			BaseRatePerMinute: 50,
			DurationMinutes:   30,
			CouponCode:        "NOPE",
			UserID:            "user-1",
		})
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
	})

	t.Run("coupon already used by this user", func(t *testing.T) {
		coupon := activeCoupon(constvars.CouponTypePercentage, 10)
		coupon.UsageHistory = []models.CouponUsage{{UserID: "user-1", Used: 1}}
		repo := &fakeCouponRepository{coupon: coupon}
		uc := newPricingUsecase(repo)
		_, err := uc.Price(context.Background(), contracts.PriceRequest{
			BaseRatePerMinute: 50,
			DurationMinutes:   30,
			CouponCode:        "WELCOME10",
			UserID:            "user-1",
		})
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 403, customErr.StatusCode)
		assert.Equal(t, 0, repo.redeemCalls)
	})

	t.Run("other users do not block redemption", func(t *testing.T) {
		coupon := activeCoupon(constvars.CouponTypePercentage, 10)
		coupon.UsageHistory = []models.CouponUsage{{UserID: "someone-else", Used: 1}}
		repo := &fakeCouponRepository{coupon: coupon}
		uc := newPricingUsecase(repo)
		result, err := uc.Price(context.Background(), contracts.PriceRequest{
			BaseRatePerMinute: 50,
			DurationMinutes:   30,
			CouponCode:        "WELCOME10",
			UserID:            "user-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, 150.0, result.Discount)
	})

	t.Run("overpayment rejected before coupon is burned", func(t *testing.T) {
		repo := &fakeCouponRepository{coupon: activeCoupon(constvars.CouponTypePercentage, 10)}
		uc := newPricingUsecase(repo)
		_, err := uc.Price(context.Background(), contracts.PriceRequest{
			BaseRatePerMinute: 50,
			DurationMinutes:   30,
			CouponCode:        "WELCOME10",
			UserID:            "user-1",
			AmountPaid:        1400,
		})
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
		assert.Equal(t, 0, repo.redeemCalls)
		assert.Empty(t, repo.coupon.UsageHistory)
	})

	t.Run("overpayment without coupon", func(t *testing.T) {
		uc := newPricingUsecase(&fakeCouponRepository{})
		_, err := uc.Price(context.Background(), contracts.PriceRequest{
			BaseRatePerMinute: 50,
			DurationMinutes:   30,
			AmountPaid:        1501,
		})
		assert.Error(t, err)
	})

	t.Run("paying exactly the discounted payable succeeds", func(t *testing.T) {
		repo := &fakeCouponRepository{coupon: activeCoupon(constvars.CouponTypeFixed, 500)}
		uc := newPricingUsecase(repo)
		result, err := uc.Price(context.Background(), contracts.PriceRequest{
			BaseRatePerMinute: 50,
			DurationMinutes:   30,
			CouponCode:        "WELCOME10",
			UserID:            "user-1",
			AmountPaid:        1000,
		})
		assert.NoError(t, err)
		assert.Equal(t, 1000.0, result.Payable)
	})
}
