package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StorageProvider is the object-storage collaborator the upload protocol
// relies on. pkg/cloudinary provides the production implementation.
type StorageProvider interface {
	Upload(ctx context.Context, filePath, resourceType string) (string, error)
	SignUploadRequest(resourceType string) (*models.UploadGrant, error)
	VerifyUpload(ctx context.Context, publicID, resourceType string) (string, error)
}

// UploadService turns stored objects into media records. It supports the
// two-phase direct-to-storage flow (grant, client upload, confirm) and the
// legacy server-proxied upload; both converge on the same create+append
// contract.
type UploadService struct {
	userRepository  repositories.UserRepository
	mediaRepository repositories.MediaRepository
	storage         StorageProvider
}

// NewUploadService creates a new UploadService
func NewUploadService(userRepo repositories.UserRepository, mediaRepo repositories.MediaRepository, storage StorageProvider) *UploadService {
	return &UploadService{
		userRepository:  userRepo,
		mediaRepository: mediaRepo,
		storage:         storage,
	}
}

// RequestUploadGrant issues a stateless signed grant for a direct client
// upload. Nothing is persisted; only the holder of the API secret could have
// produced the signature, and the provider enforces it on redemption.
func (s *UploadService) RequestUploadGrant(ctx context.Context, userID, resourceType string) (*models.UploadGrant, error) {
	if _, err := s.userRepository.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	grant, err := s.storage.SignUploadRequest(resourceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, err)
	}
	return grant, nil
}

// ConfirmUpload registers a directly uploaded object as a media record.
// The provider lookup doubles as the proof that the upload completed; if it
// fails no record is created.
func (s *UploadService) ConfirmUpload(ctx context.Context, userID, publicID, title, resourceType string) (*models.Media, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.VerifyUpload(ctx, publicID, resourceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, err)
	}

	return s.createMedia(ctx, user.ID, title, url, resourceType)
}

// Upload relays a locally received file to the storage provider and
// registers it as a media record. The resource type is derived from the
// uploaded file's content type.
func (s *UploadService) Upload(ctx context.Context, userID, title, filePath, contentType string) (*models.Media, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resourceType := models.MediaTypeImage
	if strings.HasPrefix(contentType, "video") {
		resourceType = models.MediaTypeVideo
	}

	url, err := s.storage.Upload(ctx, filePath, resourceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, err)
	}

	return s.createMedia(ctx, user.ID, title, url, resourceType)
}

// Delete removes a media record and its reference from the owner's upload
// list. Only the owner may delete.
func (s *UploadService) Delete(ctx context.Context, mediaID, userID string) error {
	media, err := s.mediaRepository.GetMediaByID(ctx, mediaID)
	if err != nil {
		return err
	}

	if media.UserID.Hex() != userID {
		return ErrNotOwner
	}

	if err := s.mediaRepository.DeleteMedia(ctx, mediaID); err != nil {
		return err
	}
	return s.userRepository.RemoveUploadedMedia(ctx, media.UserID, media.ID)
}

// createMedia creates the media record and appends its id to the owner's
// upload list. The two writes are not transactional; a crash in between
// leaves a media record missing from the owner's list but still queryable.
func (s *UploadService) createMedia(ctx context.Context, ownerID primitive.ObjectID, title, url, resourceType string) (*models.Media, error) {
	media := &models.Media{
		Title:  title,
		URL:    url,
		Type:   resourceType,
		UserID: ownerID,
	}
	if err := s.mediaRepository.CreateMedia(ctx, media); err != nil {
		return nil, err
	}

	if err := s.userRepository.AddUploadedMedia(ctx, ownerID, media.ID); err != nil {
		return nil, err
	}
	return media, nil
}
