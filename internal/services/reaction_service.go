package services

import (
	"context"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/internal/repositories"
)

// ReactionAction is the desired reaction of a user toward a media item
type ReactionAction string

const (
	ActionLike    ReactionAction = "like"
	ActionDislike ReactionAction = "dislike"
)

// ReactionService keeps the mutually exclusive like/dislike state between a
// user and a media item consistent: the membership sets on the user document
// are the source of truth, the counters on the media document are
// denormalized aggregates of them.
type ReactionService struct {
	userRepository  repositories.UserRepository
	mediaRepository repositories.MediaRepository
}

// NewReactionService creates a new ReactionService
func NewReactionService(userRepo repositories.UserRepository, mediaRepo repositories.MediaRepository) *ReactionService {
	return &ReactionService{
		userRepository:  userRepo,
		mediaRepository: mediaRepo,
	}
}

// ApplyReaction transitions the (user, media) pair to the desired reaction
// and returns the media with its updated counters.
//
// The transition is computed from the user's current membership and applied
// as at most one update per document: the user update carries the net
// $pull/$addToSet pair, the media update carries one $inc covering both
// counters. Each document transition is atomic; there is no transaction
// across the two documents, so a crash between them can desynchronize the
// counters from the sets.
func (s *ReactionService) ApplyReaction(ctx context.Context, mediaID, userID string, action ReactionAction) (*models.Media, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	media, err := s.mediaRepository.GetMediaByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	wasLiked := user.HasLiked(media.ID)
	wasDisliked := user.HasDisliked(media.ID)

	// Repeating the current reaction is a state no-op. There is no
	// clear-to-neutral transition; a reaction can only be replaced by the
	// opposite one.
	if (action == ActionLike && wasLiked) || (action == ActionDislike && wasDisliked) {
		return media, nil
	}

	var likesDelta, dislikesDelta int
	switch {
	case action == ActionLike && wasDisliked:
		if err := s.userRepository.MoveDislikeToLike(ctx, user.ID, media.ID); err != nil {
			return nil, err
		}
		likesDelta, dislikesDelta = 1, -1
	case action == ActionLike:
		if err := s.userRepository.AddLikedMedia(ctx, user.ID, media.ID); err != nil {
			return nil, err
		}
		likesDelta = 1
	case action == ActionDislike && wasLiked:
		if err := s.userRepository.MoveLikeToDislike(ctx, user.ID, media.ID); err != nil {
			return nil, err
		}
		likesDelta, dislikesDelta = -1, 1
	default:
		if err := s.userRepository.AddDislikedMedia(ctx, user.ID, media.ID); err != nil {
			return nil, err
		}
		dislikesDelta = 1
	}

	return s.mediaRepository.ApplyReactionCounts(ctx, media.ID, likesDelta, dislikesDelta)
}
