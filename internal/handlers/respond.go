package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/internal/repositories"
	"github.com/MohamedHisham20/media-sharing-platform/internal/services"
	"github.com/labstack/echo/v4"
)

// respond writes the success envelope every client depends on
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondPage writes a success envelope carrying pagination metadata
func respondPage(c echo.Context, status int, message string, data interface{}, page *models.Pagination) error {
	return c.JSON(status, models.APIResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: page,
	})
}

// respondError writes the failure envelope
func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, models.APIResponse{
		Success: false,
		Message: message,
	})
}

// mapError translates core failures to transport status codes:
// NotFound to 404, invalid id to 400, duplicate to 409, not owner to 403,
// upstream and unclassified to 500.
func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound), errors.Is(err, repositories.ErrMediaNotFound):
		return respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrInvalidID):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrDuplicateUser):
		return respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		return respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUpstream):
		return respondError(c, http.StatusInternalServerError, err.Error())
	default:
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
}

// buildPagination computes the pagination block for a listing window
func buildPagination(page, limit int, totalItems int64) *models.Pagination {
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	return &models.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// parsePagination reads page/limit query params with the API defaults
func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
