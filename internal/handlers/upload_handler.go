package handlers

import (
	"io"
	"net/http"
	"os"

	"github.com/MohamedHisham20/media-sharing-platform/internal/middleware"
	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/internal/services"
	"github.com/labstack/echo/v4"
)

// UploadHandler handles media upload and deletion HTTP requests
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// RegisterUploadRoutes registers upload routes; the group must carry JWT
// authentication.
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/upload", h.UploadMedia)
	g.POST("/upload-url", h.GetUploadURL)
	g.POST("/confirm-upload", h.ConfirmUpload)
	g.DELETE("/:id", h.DeleteMedia)
}

// UploadMedia is the legacy server-proxied path: the file is received as
// multipart form data, spooled to a temp file, relayed to the storage
// provider and removed locally.
func (h *UploadHandler) UploadMedia(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	var req models.UploadMediaRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, http.StatusBadRequest, "No file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Cannot read uploaded file")
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to buffer upload")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return respondError(c, http.StatusInternalServerError, "Failed to buffer upload")
	}
	tmp.Close()

	media, err := h.uploadService.Upload(c.Request().Context(), userID, req.Title,
		tmp.Name(), fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusCreated, "Media uploaded", media)
}

// GetUploadURL issues a signed grant for a direct client upload
func (h *UploadHandler) GetUploadURL(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	var req models.UploadURLRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	grant, err := h.uploadService.RequestUploadGrant(c.Request().Context(), userID, req.Type)
	if err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusOK, "Upload URL generated", grant)
}

// ConfirmUpload registers a directly uploaded object as a media record
func (h *UploadHandler) ConfirmUpload(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	var req models.ConfirmUploadRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	media, err := h.uploadService.ConfirmUpload(c.Request().Context(), userID, req.PublicID, req.Title, req.Type)
	if err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusCreated, "Upload confirmed", media)
}

// DeleteMedia deletes a media item the authenticated user owns
func (h *UploadHandler) DeleteMedia(c echo.Context) error {
	userID := middleware.UserIDFromContext(c)

	if err := h.uploadService.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return mapError(c, err)
	}

	return respond(c, http.StatusOK, "Media deleted successfully", nil)
}
