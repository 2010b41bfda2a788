package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
)

// ActivityRepository defines the interface for the activity log
type ActivityRepository interface {
	Record(ctx context.Context, activity *models.Activity) error
	ListByRecipient(ctx context.Context, recipientID uint, skip, limit int64) ([]models.Activity, error)
}

// MongoActivityRepository implements ActivityRepository for MongoDB
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoActivityRepository
func NewMongoActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{collection: db.Collection("activities")}
}

// EnsureIndexes creates the index serving ListByRecipient.
func (r *MongoActivityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

// Record inserts an activity entry.
func (r *MongoActivityRepository) Record(ctx context.Context, activity *models.Activity) error {
	activity.ID = primitive.NewObjectID()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, activity); err != nil {
		return errs.Internal("failed to record activity", err)
	}
	return nil
}

// ListByRecipient retrieves a profile's activity newest first.
func (r *MongoActivityRepository) ListByRecipient(ctx context.Context, recipientID uint, skip, limit int64) ([]models.Activity, error) {
	findOptions := options.Find().
		SetSkip(skip).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"recipient_id": recipientID}, findOptions)
	if err != nil {
		return nil, errs.Internal("failed to list activity", err)
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, errs.Internal("failed to decode activity", err)
	}
	return activities, nil
}

// NoopActivityRepository is used when no MongoDB is configured.
type NoopActivityRepository struct{}

func (NoopActivityRepository) Record(context.Context, *models.Activity) error { return nil }

func (NoopActivityRepository) ListByRecipient(context.Context, uint, int64, int64) ([]models.Activity, error) {
	return []models.Activity{}, nil
}

var (
	_ ActivityRepository = (*MongoActivityRepository)(nil)
	_ ActivityRepository = NoopActivityRepository{}
)
