package handlers

import (
	"errors"
	"net/http"

	"github.com/MohamedHisham20/media-sharing-platform/internal/middleware"
	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository  repositories.UserRepository
	mediaRepository repositories.MediaRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, mediaRepo repositories.MediaRepository) *UserHandler {
	return &UserHandler{
		userRepository:  userRepo,
		mediaRepository: mediaRepo,
	}
}

// RegisterPublicUserRoutes registers routes that need no authentication
func (h *UserHandler) RegisterPublicUserRoutes(g *echo.Group) {
	g.GET("/:id", h.GetUserProfile)
	g.GET("/:id/liked-media", h.GetUserLikedMedia)
}

// RegisterProtectedUserRoutes registers routes behind JWT authentication
func (h *UserHandler) RegisterProtectedUserRoutes(g *echo.Group) {
	g.GET("", h.GetUsers)
	g.PUT("/:id", h.UpdateUserProfile)
	g.DELETE("/:id", h.DeleteUser)
}

// GetUsers lists users; passwords are never serialized
func (h *UserHandler) GetUsers(c echo.Context) error {
	page, limit := parsePagination(c)
	skip := int64((page - 1) * limit)

	users, err := h.userRepository.GetUsers(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusOK, "Users fetched", users)
}

// GetUserProfile returns a single user's public profile
func (h *UserHandler) GetUserProfile(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return respond(c, http.StatusOK, "User fetched", user)
}

// UpdateUserProfile updates the authenticated user's own profile
func (h *UserHandler) UpdateUserProfile(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	if c.Param("id") != userID {
		return respondError(c, http.StatusForbidden, "Cannot modify another user's profile")
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return mapError(c, err)
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email); err == nil {
			return respondError(c, http.StatusConflict, "Email already in use")
		} else if !errors.Is(err, repositories.ErrUserNotFound) {
			return mapError(c, err)
		}
		user.Email = req.Email
	}
	if req.Username != "" && req.Username != user.Username {
		if _, err := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username); err == nil {
			return respondError(c, http.StatusConflict, "Username already taken")
		} else if !errors.Is(err, repositories.ErrUserNotFound) {
			return mapError(c, err)
		}
		user.Username = req.Username
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return respondError(c, http.StatusInternalServerError, "Failed to hash password")
		}
		user.Password = string(hashed)
	}

	if err := h.userRepository.UpdateUser(c.Request().Context(), user); err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusOK, "User updated", user)
}

// DeleteUser deletes the authenticated user's own account
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)
	if c.Param("id") != userID {
		return respondError(c, http.StatusForbidden, "Cannot delete another user's account")
	}

	// TODO: cascade delete of the user's uploaded media and removal of the
	// user's reactions from media counters.
	if err := h.userRepository.DeleteUser(c.Request().Context(), userID); err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusOK, "User deleted", nil)
}

// GetUserLikedMedia returns the media a user has liked, paginated
func (h *UserHandler) GetUserLikedMedia(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	page, limit := parsePagination(c)
	skip := int64((page - 1) * limit)

	media, err := h.mediaRepository.GetMediaByIDs(c.Request().Context(), user.LikedMedia, skip, int64(limit))
	if err != nil {
		return mapError(c, err)
	}

	// Deleted media are never pulled from reaction sets, so dangling ids
	// can make totalItems overstate what GetMediaByIDs resolves.
	return respondPage(c, http.StatusOK, "Liked media fetched", media,
		buildPagination(page, limit, int64(len(user.LikedMedia))))
}
