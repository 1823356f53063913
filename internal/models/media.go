package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media types recognized by the platform
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Media represents an uploaded image or video stored in MongoDB.
// Likes and Dislikes are denormalized aggregates of the reverse relation
// from users' likedMedia/dislikedMedia sets.
type Media struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	URL       string             `json:"url" bson:"url"`
	Type      string             `json:"type" bson:"type"`
	Likes     int                `json:"likes" bson:"likes"`
	Dislikes  int                `json:"dislikes" bson:"dislikes"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}

// UploadMediaRequest defines the form fields for the server-proxied upload
type UploadMediaRequest struct {
	Title string `json:"title" form:"title" validate:"required,min=1,max=200"`
}

// UploadURLRequest defines the request body for requesting an upload grant
type UploadURLRequest struct {
	Type string `json:"type" validate:"required,oneof=image video"`
}

// ConfirmUploadRequest defines the request body for confirming a direct upload
type ConfirmUploadRequest struct {
	PublicID string `json:"public_id" validate:"required"`
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Type     string `json:"type" validate:"required,oneof=image video"`
}

// UploadGrant is the ephemeral signed grant returned to clients for
// direct-to-Cloudinary uploads. It is never persisted; the storage provider
// validates the signature on redemption.
type UploadGrant struct {
	URL          string `json:"url"`
	PublicID     string `json:"public_id"`
	Signature    string `json:"signature"`
	Timestamp    int64  `json:"timestamp"`
	APIKey       string `json:"api_key"`
	CloudName    string `json:"cloud_name"`
	Folder       string `json:"folder"`
	ResourceType string `json:"resource_type"`
}
