package orders

import (
	"context"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderMongoRepository struct {
	Collection *mongo.Collection
}

var (
	orderMongoRepositoryInstance contracts.OrderRepository
	onceOrderMongoRepository     sync.Once
)

func NewOrderMongoRepository(db *mongo.Client, dbName string) contracts.OrderRepository {
	onceOrderMongoRepository.Do(func() {
		orderMongoRepositoryInstance = &OrderMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionOrders),
		}
	})
	return orderMongoRepositoryInstance
}

func (r *OrderMongoRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	result, err := r.Collection.InsertOne(ctx, order)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return order, nil
}

func (r *OrderMongoRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}

func (r *OrderMongoRepository) FindByInvoiceID(ctx context.Context, invoiceID string) (*models.Order, error) {
	var order models.Order
	err := r.Collection.FindOne(ctx, bson.M{"invoiceId": invoiceID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &order, nil
}

func (r *OrderMongoRepository) SetDownloadURLs(ctx context.Context, invoiceID string, urls []string) error {
	update := bson.M{
		"$set": bson.M{
			"download":  urls,
			"updatedAt": time.Now().UTC(),
		},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"invoiceId": invoiceID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
