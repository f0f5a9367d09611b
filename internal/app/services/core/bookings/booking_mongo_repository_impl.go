package bookings

import (
	"context"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/dto/requests"
	"psymate-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingMongoRepository struct {
	Collection *mongo.Collection
}

var (
	bookingMongoRepositoryInstance contracts.BookingRepository
	onceBookingMongoRepository     sync.Once
)

func NewBookingMongoRepository(db *mongo.Client, dbName string) contracts.BookingRepository {
	onceBookingMongoRepository.Do(func() {
		bookingMongoRepositoryInstance = &BookingMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
		}
	})
	return bookingMongoRepositoryInstance
}

func (r *BookingMongoRepository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	result, err := r.Collection.InsertOne(ctx, booking)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	booking.ID = result.InsertedID.(primitive.ObjectID)
	return booking, nil
}

func (r *BookingMongoRepository) FindByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.Collection.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}

func (r *BookingMongoRepository) FindActiveByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	filter := bson.M{
		"bookingId": bookingID,
		"deleted":   false,
	}
	err := r.Collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}

func (r *BookingMongoRepository) FindOverlapping(ctx context.Context, doctorID, establishmentID string, start, end time.Time, excludeBookingID string) (*models.Booking, error) {
	// Half-open overlap: an existing booking collides when it starts before
	// the candidate ends and ends after the candidate starts.
	filter := bson.M{
		"doctor._id":        doctorID,
		"establishment._id": establishmentID,
		"deleted":           false,
		"startTime":         bson.M{"$lt": end},
		"endTime":           bson.M{"$gt": start},
	}
	if excludeBookingID != "" {
		filter["bookingId"] = bson.M{"$ne": excludeBookingID}
	}

	var booking models.Booking
	err := r.Collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}

func (r *BookingMongoRepository) FindByUser(ctx context.Context, userID string, pagination requests.Pagination) ([]models.Booking, int, error) {
	filter := bson.M{
		"deleted": false,
		"$or": []bson.M{
			{"patient._id": userID},
			{"doctor._id": userID},
		},
	}
	return r.findPage(ctx, filter, pagination)
}

func (r *BookingMongoRepository) FindAll(ctx context.Context, pagination requests.Pagination) ([]models.Booking, int, error) {
	return r.findPage(ctx, bson.M{"deleted": false}, pagination)
}

func (r *BookingMongoRepository) findPage(ctx context.Context, filter bson.M, pagination requests.Pagination) ([]models.Booking, int, error) {
	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	findOptions := options.Find().
		SetSort(bson.M{"startTime": -1}).
		SetSkip(int64((pagination.Page - 1) * pagination.PageSize)).
		SetLimit(int64(pagination.PageSize))

	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, int(total), nil
}

func (r *BookingMongoRepository) UpdateSlot(ctx context.Context, booking *models.Booking) error {
	update := bson.M{
		"$set": bson.M{
			"doctor":          booking.Doctor,
			"establishment":   booking.Establishment,
			"startTime":       booking.StartTime,
			"endTime":         booking.EndTime,
			"duration":        booking.Duration,
			"slot":            booking.Slot,
			"appointmentDate": booking.AppointmentDate,
			"updatedAt":       time.Now().UTC(),
		},
	}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"bookingId": booking.BookingID, "deleted": false}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrBookingNotFound(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *BookingMongoRepository) CancelByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	filter := bson.M{
		"bookingId": bookingID,
		"deleted":   false,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    constvars.BookingStatusCancelled,
			"deleted":   true,
			"updatedAt": time.Now().UTC(),
		},
	}
	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, updateOptions).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &booking, nil
}
