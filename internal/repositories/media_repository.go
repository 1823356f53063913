package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MediaFilter narrows media listings to one owner and/or one media type
type MediaFilter struct {
	UserID string
	Type   string
}

// MediaRepository defines the interface for media data operations
type MediaRepository interface {
	CreateMedia(ctx context.Context, media *models.Media) error
	GetMediaByID(ctx context.Context, id string) (*models.Media, error)
	GetMedia(ctx context.Context, filter MediaFilter, skip, limit int64) ([]models.Media, error)
	CountMedia(ctx context.Context, filter MediaFilter) (int64, error)
	GetMediaByIDs(ctx context.Context, ids []primitive.ObjectID, skip, limit int64) ([]models.Media, error)
	DeleteMedia(ctx context.Context, id string) error
	ApplyReactionCounts(ctx context.Context, mediaID primitive.ObjectID, likesDelta, dislikesDelta int) (*models.Media, error)
}

// MongoMediaRepository implements MediaRepository for MongoDB
type MongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new MongoMediaRepository
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{collection: db.Collection("media")}
}

// CreateMedia creates a new media record in MongoDB
func (r *MongoMediaRepository) CreateMedia(ctx context.Context, media *models.Media) error {
	media.ID = primitive.NewObjectID()
	media.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, media)
	return err
}

// GetMediaByID retrieves a media record by ID from MongoDB
func (r *MongoMediaRepository) GetMediaByID(ctx context.Context, id string) (*models.Media, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	var media models.Media
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&media)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

// GetMedia retrieves media from MongoDB with pagination, newest first
func (r *MongoMediaRepository) GetMedia(ctx context.Context, filter MediaFilter, skip, limit int64) ([]models.Media, error) {
	query, err := buildMediaQuery(filter)
	if err != nil {
		return nil, err
	}

	var media []models.Media
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &media); err != nil {
		return nil, err
	}
	return media, nil
}

// CountMedia counts media matching the filter
func (r *MongoMediaRepository) CountMedia(ctx context.Context, filter MediaFilter) (int64, error) {
	query, err := buildMediaQuery(filter)
	if err != nil {
		return 0, err
	}
	return r.collection.CountDocuments(ctx, query)
}

// GetMediaByIDs retrieves the media records for a set of ids, newest first
func (r *MongoMediaRepository) GetMediaByIDs(ctx context.Context, ids []primitive.ObjectID, skip, limit int64) ([]models.Media, error) {
	var media []models.Media
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &media); err != nil {
		return nil, err
	}
	return media, nil
}

// DeleteMedia deletes a media record by ID from MongoDB
func (r *MongoMediaRepository) DeleteMedia(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrMediaNotFound
	}
	return nil
}

// ApplyReactionCounts adjusts both denormalized counters in a single $inc
// and returns the post-update document.
func (r *MongoMediaRepository) ApplyReactionCounts(ctx context.Context, mediaID primitive.ObjectID, likesDelta, dislikesDelta int) (*models.Media, error) {
	update := bson.M{"$inc": bson.M{"likes": likesDelta, "dislikes": dislikesDelta}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var media models.Media
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": mediaID}, update, opts).Decode(&media)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func buildMediaQuery(filter MediaFilter) (bson.M, error) {
	query := bson.M{}
	if filter.UserID != "" {
		ownerID, err := primitive.ObjectIDFromHex(filter.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidID, filter.UserID)
		}
		query["user"] = ownerID
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	return query, nil
}
