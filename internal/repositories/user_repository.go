package repositories

import (
	"context"
	"fmt"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations.
// The four reaction-set mutators each issue a single targeted update so the
// user document transitions atomically between reaction states.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUsers(ctx context.Context, skip, limit int64) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	AddLikedMedia(ctx context.Context, userID, mediaID primitive.ObjectID) error
	AddDislikedMedia(ctx context.Context, userID, mediaID primitive.ObjectID) error
	MoveDislikeToLike(ctx context.Context, userID, mediaID primitive.ObjectID) error
	MoveLikeToDislike(ctx context.Context, userID, mediaID primitive.ObjectID) error
	AddUploadedMedia(ctx context.Context, userID, mediaID primitive.ObjectID) error
	RemoveUploadedMedia(ctx context.Context, userID, mediaID primitive.ObjectID) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique indexes backing the email and username
// invariants. The handler pre-checks alone are racy; the indexes make the
// database reject the duplicate that slips through.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// CreateUser creates a new user in MongoDB
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.LikedMedia == nil {
		user.LikedMedia = []primitive.ObjectID{}
	}
	if user.DislikedMedia == nil {
		user.DislikedMedia = []primitive.ObjectID{}
	}
	if user.UploadedMedia == nil {
		user.UploadedMedia = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateUser
	}
	return err
}

// GetUserByID retrieves a user by ID from MongoDB
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from MongoDB
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetUserByUsername retrieves a user by username from MongoDB
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) findOne(ctx context.Context, query bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, query).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves users from MongoDB with pagination
func (r *MongoUserRepository) GetUsers(ctx context.Context, skip, limit int64) ([]models.User, error) {
	var users []models.User
	findOptions := options.Find().SetSkip(skip).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser replaces an existing user document in MongoDB
func (r *MongoUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUser
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser deletes a user by ID from MongoDB
func (r *MongoUserRepository) DeleteUser(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddLikedMedia adds a media id to the user's liked set
func (r *MongoUserRepository) AddLikedMedia(ctx context.Context, userID, mediaID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$addToSet": bson.M{"likedMedia": mediaID}})
}

// AddDislikedMedia adds a media id to the user's disliked set
func (r *MongoUserRepository) AddDislikedMedia(ctx context.Context, userID, mediaID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$addToSet": bson.M{"dislikedMedia": mediaID}})
}

// MoveDislikeToLike moves a media id from the disliked set to the liked set
// in one update, so the two sets stay disjoint even mid-operation.
func (r *MongoUserRepository) MoveDislikeToLike(ctx context.Context, userID, mediaID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{
		"$pull":     bson.M{"dislikedMedia": mediaID},
		"$addToSet": bson.M{"likedMedia": mediaID},
	})
}

// MoveLikeToDislike moves a media id from the liked set to the disliked set
func (r *MongoUserRepository) MoveLikeToDislike(ctx context.Context, userID, mediaID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{
		"$pull":     bson.M{"likedMedia": mediaID},
		"$addToSet": bson.M{"dislikedMedia": mediaID},
	})
}

// AddUploadedMedia appends a media id to the user's upload list
func (r *MongoUserRepository) AddUploadedMedia(ctx context.Context, userID, mediaID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$push": bson.M{"uploadedMedia": mediaID}})
}

// RemoveUploadedMedia removes a media id from the user's upload list
func (r *MongoUserRepository) RemoveUploadedMedia(ctx context.Context, userID, mediaID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$pull": bson.M{"uploadedMedia": mediaID}})
}

func (r *MongoUserRepository) updateByID(ctx context.Context, userID primitive.ObjectID, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
