package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/internal/repositories"
	"github.com/labstack/echo/v4"
)

// MediaHandler handles media browsing HTTP requests
type MediaHandler struct {
	mediaRepository repositories.MediaRepository
	userRepository  repositories.UserRepository
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaRepo repositories.MediaRepository, userRepo repositories.UserRepository) *MediaHandler {
	return &MediaHandler{
		mediaRepository: mediaRepo,
		userRepository:  userRepo,
	}
}

// RegisterMediaRoutes registers media browsing routes (all public)
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.GET("/public", h.GetPublicMedia)
	g.GET("", h.GetMedia)
	g.GET("/:id", h.GetMediaByID)
}

// EnrichedMedia is a media item with its owner's public profile attached
type EnrichedMedia struct {
	models.Media
	Author models.UserCompact `json:"author"`
}

// GetMedia returns the paginated feed, newest first, with optional
// userId/type filters
func (h *MediaHandler) GetMedia(c echo.Context) error {
	page, limit := parsePagination(c)
	skip := int64((page - 1) * limit)

	mediaType := c.QueryParam("type")
	if mediaType != "" && mediaType != models.MediaTypeImage && mediaType != models.MediaTypeVideo {
		return respondError(c, http.StatusBadRequest, "Type must be either image or video")
	}

	filter := repositories.MediaFilter{
		UserID: c.QueryParam("userId"),
		Type:   mediaType,
	}

	media, err := h.mediaRepository.GetMedia(c.Request().Context(), filter, skip, int64(limit))
	if err != nil {
		return mapError(c, err)
	}

	total, err := h.mediaRepository.CountMedia(c.Request().Context(), filter)
	if err != nil {
		return mapError(c, err)
	}

	return respondPage(c, http.StatusOK, "Media fetched",
		h.enrich(c.Request().Context(), media), buildPagination(page, limit, total))
}

// GetPublicMedia returns the latest items for the unauthenticated landing
// page, capped at 20
func (h *MediaHandler) GetPublicMedia(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 20 {
		limit = 6
	}

	media, err := h.mediaRepository.GetMedia(c.Request().Context(), repositories.MediaFilter{}, 0, int64(limit))
	if err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusOK, "Media fetched", h.enrich(c.Request().Context(), media))
}

// GetMediaByID returns a single media item with its owner resolved
func (h *MediaHandler) GetMediaByID(c echo.Context) error {
	media, err := h.mediaRepository.GetMediaByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	enriched := h.enrich(c.Request().Context(), []models.Media{*media})
	return respond(c, http.StatusOK, "Media fetched", enriched[0])
}

// enrich resolves owner profiles for a page of media. A missing owner
// leaves an empty author rather than failing the listing.
func (h *MediaHandler) enrich(ctx context.Context, media []models.Media) []EnrichedMedia {
	userMap := make(map[string]models.UserCompact)
	for _, m := range media {
		ownerID := m.UserID.Hex()
		if _, seen := userMap[ownerID]; seen {
			continue
		}
		if user, err := h.userRepository.GetUserByID(ctx, ownerID); err == nil {
			userMap[ownerID] = user.ToCompact()
		}
	}

	enriched := make([]EnrichedMedia, len(media))
	for i, m := range media {
		enriched[i] = EnrichedMedia{
			Media:  m,
			Author: userMap[m.UserID.Hex()],
		}
	}
	return enriched
}
