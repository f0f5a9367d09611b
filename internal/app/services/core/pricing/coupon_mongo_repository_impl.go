package pricing

import (
	"context"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CouponMongoRepository struct {
	Collection *mongo.Collection
}

var (
	couponMongoRepositoryInstance contracts.CouponRepository
	onceCouponMongoRepository     sync.Once
)

func NewCouponMongoRepository(db *mongo.Client, dbName string) contracts.CouponRepository {
	onceCouponMongoRepository.Do(func() {
		couponMongoRepositoryInstance = &CouponMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionCoupons),
		}
	})
	return couponMongoRepositoryInstance
}

func (r *CouponMongoRepository) FindActiveByDisplayName(ctx context.Context, displayName string) (*models.Coupon, error) {
	filter := bson.M{
		"displayName": displayName,
		"active":      true,
		"deleted":     false,
	}
	var coupon models.Coupon
	err := r.Collection.FindOne(ctx, filter).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &coupon, nil
}

func (r *CouponMongoRepository) RedeemForUser(ctx context.Context, displayName, userID string) (*models.Coupon, error) {
	// The filter excludes coupons the user already redeemed, so concurrent
	// redemptions by the same user cannot both succeed.
	filter := bson.M{
		"displayName": displayName,
		"active":      true,
		"deleted":     false,
		"usageHistory": bson.M{
			"$not": bson.M{
				"$elemMatch": bson.M{"userId": userID},
			},
		},
	}
	update := bson.M{
		"$push": bson.M{
			"usageHistory": models.CouponUsage{UserID: userID, Used: 1},
		},
		"$inc": bson.M{"currentUses": 1},
	}
	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var coupon models.Coupon
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, updateOptions).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &coupon, nil
}
