package establishments

import (
	"context"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type EstablishmentMongoRepository struct {
	Collection *mongo.Collection
}

var (
	establishmentMongoRepositoryInstance contracts.EstablishmentRepository
	onceEstablishmentMongoRepository     sync.Once
)

func NewEstablishmentMongoRepository(db *mongo.Client, dbName string) contracts.EstablishmentRepository {
	onceEstablishmentMongoRepository.Do(func() {
		establishmentMongoRepositoryInstance = &EstablishmentMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionEstablishments),
		}
	})
	return establishmentMongoRepositoryInstance
}

func (r *EstablishmentMongoRepository) FindByID(ctx context.Context, establishmentID string) (*models.Establishment, error) {
	objectID, err := primitive.ObjectIDFromHex(establishmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var establishment models.Establishment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&establishment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &establishment, nil
}
