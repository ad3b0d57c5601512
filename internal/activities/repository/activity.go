package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	activityerrors "careconnect/internal/activities/errors"
	"careconnect/pkg/config"
	"careconnect/pkg/model"
)

const CollectionName = "Activities"

type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	FindByID(ctx context.Context, id string) (*model.Activity, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Activity, int64, error)
}

type mongoActivityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoActivityRepository(cfg *config.Config) ActivityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoActivityRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	activity.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		activity.ID = oid.Hex()
	}
	return nil
}

func (r *mongoActivityRepository) FindByID(ctx context.Context, id string) (*model.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", activityerrors.ErrInvalidID, id)
	}

	var activity model.Activity
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, activityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	return &activity, nil
}

func (r *mongoActivityRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Activity, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []*model.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, 0, fmt.Errorf("failed to decode activities: %w", err)
	}

	return activities, total, nil
}
