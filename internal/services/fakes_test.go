package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes mirroring the Mongo update semantics:
// $addToSet never duplicates, $pull removes, the move operations touch both
// sets in one call.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID.Hex()] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	r.users[user.ID.Hex()] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetUsers(_ context.Context, _, _ int64) ([]models.User, error) {
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID.Hex()]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID.Hex()] = user
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) AddLikedMedia(_ context.Context, userID, mediaID primitive.ObjectID) error {
	u, ok := r.users[userID.Hex()]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.LikedMedia = addToSet(u.LikedMedia, mediaID)
	return nil
}

func (r *fakeUserRepo) AddDislikedMedia(_ context.Context, userID, mediaID primitive.ObjectID) error {
	u, ok := r.users[userID.Hex()]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.DislikedMedia = addToSet(u.DislikedMedia, mediaID)
	return nil
}

func (r *fakeUserRepo) MoveDislikeToLike(_ context.Context, userID, mediaID primitive.ObjectID) error {
	u, ok := r.users[userID.Hex()]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.DislikedMedia = pull(u.DislikedMedia, mediaID)
	u.LikedMedia = addToSet(u.LikedMedia, mediaID)
	return nil
}

func (r *fakeUserRepo) MoveLikeToDislike(_ context.Context, userID, mediaID primitive.ObjectID) error {
	u, ok := r.users[userID.Hex()]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.LikedMedia = pull(u.LikedMedia, mediaID)
	u.DislikedMedia = addToSet(u.DislikedMedia, mediaID)
	return nil
}

func (r *fakeUserRepo) AddUploadedMedia(_ context.Context, userID, mediaID primitive.ObjectID) error {
	u, ok := r.users[userID.Hex()]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.UploadedMedia = append(u.UploadedMedia, mediaID)
	return nil
}

func (r *fakeUserRepo) RemoveUploadedMedia(_ context.Context, userID, mediaID primitive.ObjectID) error {
	u, ok := r.users[userID.Hex()]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.UploadedMedia = pull(u.UploadedMedia, mediaID)
	return nil
}

func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func pull(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

type fakeMediaRepo struct {
	media map[string]*models.Media
}

func newFakeMediaRepo(media ...*models.Media) *fakeMediaRepo {
	r := &fakeMediaRepo{media: make(map[string]*models.Media)}
	for _, m := range media {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		r.media[m.ID.Hex()] = m
	}
	return r
}

func (r *fakeMediaRepo) CreateMedia(_ context.Context, media *models.Media) error {
	media.ID = primitive.NewObjectID()
	media.CreatedAt = time.Now()
	r.media[media.ID.Hex()] = media
	return nil
}

func (r *fakeMediaRepo) GetMediaByID(_ context.Context, id string) (*models.Media, error) {
	m, ok := r.media[id]
	if !ok {
		return nil, repositories.ErrMediaNotFound
	}
	return m, nil
}

func (r *fakeMediaRepo) GetMedia(_ context.Context, _ repositories.MediaFilter, _, _ int64) ([]models.Media, error) {
	media := make([]models.Media, 0, len(r.media))
	for _, m := range r.media {
		media = append(media, *m)
	}
	return media, nil
}

func (r *fakeMediaRepo) CountMedia(_ context.Context, _ repositories.MediaFilter) (int64, error) {
	return int64(len(r.media)), nil
}

func (r *fakeMediaRepo) GetMediaByIDs(_ context.Context, ids []primitive.ObjectID, _, _ int64) ([]models.Media, error) {
	var media []models.Media
	for _, id := range ids {
		if m, ok := r.media[id.Hex()]; ok {
			media = append(media, *m)
		}
	}
	return media, nil
}

func (r *fakeMediaRepo) DeleteMedia(_ context.Context, id string) error {
	if _, ok := r.media[id]; !ok {
		return repositories.ErrMediaNotFound
	}
	delete(r.media, id)
	return nil
}

func (r *fakeMediaRepo) ApplyReactionCounts(_ context.Context, mediaID primitive.ObjectID, likesDelta, dislikesDelta int) (*models.Media, error) {
	m, ok := r.media[mediaID.Hex()]
	if !ok {
		return nil, repositories.ErrMediaNotFound
	}
	m.Likes += likesDelta
	m.Dislikes += dislikesDelta
	updated := *m
	return &updated, nil
}

// fakeStorage is an in-memory StorageProvider: granted keys become
// resolvable only after markStored, mimicking the client-side phase 2.
type fakeStorage struct {
	objects     map[string]string
	grantCount  int
	uploadCount int
	failUpload  bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]string)}
}

func (s *fakeStorage) Upload(_ context.Context, filePath, resourceType string) (string, error) {
	if s.failUpload {
		return "", fmt.Errorf("provider rejected %s", filePath)
	}
	s.uploadCount++
	url := fmt.Sprintf("https://res.example.com/%s/upload-%d", resourceType, s.uploadCount)
	return url, nil
}

func (s *fakeStorage) SignUploadRequest(resourceType string) (*models.UploadGrant, error) {
	s.grantCount++
	publicID := fmt.Sprintf("media/grant-%d", s.grantCount)
	return &models.UploadGrant{
		URL:          "https://api.example.com/" + resourceType + "/upload",
		PublicID:     publicID,
		Signature:    "sig-" + publicID,
		Timestamp:    time.Now().Unix(),
		APIKey:       "key",
		CloudName:    "demo",
		Folder:       "media",
		ResourceType: resourceType,
	}, nil
}

func (s *fakeStorage) VerifyUpload(_ context.Context, publicID, resourceType string) (string, error) {
	url, ok := s.objects[publicID+"/"+resourceType]
	if !ok {
		return "", fmt.Errorf("resource %s not found", publicID)
	}
	return url, nil
}

func (s *fakeStorage) markStored(publicID, resourceType, url string) {
	s.objects[publicID+"/"+resourceType] = url
}
