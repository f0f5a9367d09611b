package timelines

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

type TimelineMongoRepository struct {
	Collection *mongo.Collection
}

var (
	timelineMongoRepositoryInstance contracts.TimelineRepository
	onceTimelineMongoRepository     sync.Once
)

func NewTimelineMongoRepository(db *mongo.Client, dbName string) contracts.TimelineRepository {
	onceTimelineMongoRepository.Do(func() {
		timelineMongoRepositoryInstance = &TimelineMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionTimelines),
		}
	})
	return timelineMongoRepositoryInstance
}

func (r *TimelineMongoRepository) Create(ctx context.Context, timeline *models.Timeline) error {
	_, err := r.Collection.InsertOne(ctx, timeline)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *TimelineMongoRepository) FindByPostID(ctx context.Context, postID string) ([]models.Timeline, error) {
	findOptions := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.Collection.Find(ctx, bson.M{"postId": postID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	timelines := make([]models.Timeline, 0)
	if err := cursor.All(ctx, &timelines); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return timelines, nil
}
