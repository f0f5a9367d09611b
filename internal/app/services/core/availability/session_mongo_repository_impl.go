package availability

import (
	"context"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionMongoRepository struct {
	Collection *mongo.Collection
}

var (
	sessionMongoRepositoryInstance contracts.SessionRepository
	onceSessionMongoRepository     sync.Once
)

func NewSessionMongoRepository(db *mongo.Client, dbName string) contracts.SessionRepository {
	onceSessionMongoRepository.Do(func() {
		sessionMongoRepositoryInstance = &SessionMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionSessions),
		}
	})
	return sessionMongoRepositoryInstance
}

func (r *SessionMongoRepository) FindByDoctorAndWeekday(ctx context.Context, doctorID, establishmentID, weekday string) ([]models.Session, error) {
	filter := bson.M{
		"doctorId":        doctorID,
		"establishmentId": establishmentID,
		"weekdays":        weekday,
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	sessions := make([]models.Session, 0)
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return sessions, nil
}
