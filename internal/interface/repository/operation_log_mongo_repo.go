package repository

import (
	"context"
	"time"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOperationLogRepository implements the OperationLogRepository interface
type MongoOperationLogRepository struct {
	collection *mongo.Collection
}

type operationLogDocument struct {
	MessageDttm time.Time `bson:"messageDttm"`
	Message     any       `bson:"message"`
}

// NewMongoOperationLogRepository creates a new MongoDB operation log repository
func NewMongoOperationLogRepository(db *mongo.Database) repository.OperationLogRepository {
	collection := db.Collection("operationLog")

	// Index on messageDttm for time range queries
	ctx := context.Background()
	collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.M{"messageDttm": -1},
	})

	return &MongoOperationLogRepository{
		collection: collection,
	}
}

// Append inserts one log entry. Payloads that are not JSON objects are kept as strings.
func (r *MongoOperationLogRepository) Append(ctx context.Context, entry *entity.OperationLogEntry) error {
	doc := operationLogDocument{MessageDttm: entry.MessageDttm}

	var message bson.M
	if err := bson.UnmarshalExtJSON(entry.Message, false, &message); err == nil {
		doc.Message = message
	} else {
		doc.Message = string(entry.Message)
	}

	_, err := r.collection.InsertOne(ctx, doc)
	return err
}
