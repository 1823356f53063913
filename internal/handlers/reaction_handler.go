package handlers

import (
	"net/http"

	"github.com/MohamedHisham20/media-sharing-platform/internal/middleware"
	"github.com/MohamedHisham20/media-sharing-platform/internal/services"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles like/dislike HTTP requests
type ReactionHandler struct {
	reactionService *services.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionService *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// RegisterReactionRoutes registers reaction routes; the group must carry
// JWT authentication.
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/:id/like", h.LikeMedia)
	g.POST("/:id/dislike", h.DislikeMedia)
}

// LikeMedia applies a like reaction to a media item
func (h *ReactionHandler) LikeMedia(c echo.Context) error {
	return h.applyReaction(c, services.ActionLike, "Liked")
}

// DislikeMedia applies a dislike reaction to a media item
func (h *ReactionHandler) DislikeMedia(c echo.Context) error {
	return h.applyReaction(c, services.ActionDislike, "Disliked")
}

func (h *ReactionHandler) applyReaction(c echo.Context, action services.ReactionAction, message string) error {
	userID := middleware.UserIDFromContext(c)

	media, err := h.reactionService.ApplyReaction(c.Request().Context(), c.Param("id"), userID, action)
	if err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusOK, message, media)
}
