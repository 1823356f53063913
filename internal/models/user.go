package models

import (
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a platform account stored in MongoDB. The three media
// reference lists are denormalized: likedMedia and dislikedMedia are
// mutually exclusive membership sets, uploadedMedia is append-ordered.
type User struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Email          string               `json:"email" bson:"email"`
	Username       string               `json:"username" bson:"username"`
	Password       string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	ProfilePicture string               `json:"profile_picture,omitempty" bson:"profilePicture,omitempty"`
	LikedMedia     []primitive.ObjectID `json:"liked_media" bson:"likedMedia"`
	DislikedMedia  []primitive.ObjectID `json:"disliked_media" bson:"dislikedMedia"`
	UploadedMedia  []primitive.ObjectID `json:"uploaded_media" bson:"uploadedMedia"`
}

// HasLiked reports whether the media id is in the user's liked set.
func (u *User) HasLiked(mediaID primitive.ObjectID) bool {
	for _, id := range u.LikedMedia {
		if id == mediaID {
			return true
		}
	}
	return false
}

// HasDisliked reports whether the media id is in the user's disliked set.
func (u *User) HasDisliked(mediaID primitive.ObjectID) bool {
	for _, id := range u.DislikedMedia {
		if id == mediaID {
			return true
		}
	}
	return false
}

// UserCompact is the public projection embedded in feed items
type UserCompact struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// ToCompact converts a User to its public projection
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID.Hex(),
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
}

// LoginRequest defines the request body for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest defines the request body for profile updates
type UpdateUserRequest struct {
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Username       string `json:"username,omitempty" validate:"omitempty,alphanum,min=3,max=30"`
	Password       string `json:"password,omitempty" validate:"omitempty,min=6,max=128"`
	ProfilePicture string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
