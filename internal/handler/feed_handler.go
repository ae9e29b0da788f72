package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"github.com/saintpdi/tamara-backend/internal/dto"
	"github.com/saintpdi/tamara-backend/internal/middleware"
	"github.com/saintpdi/tamara-backend/internal/service"
)

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// GetFeed handles GET /api/v1/feed
// Query params: mode (following|trending), limit
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)

	mode := c.Query("mode", string(service.ModeTrending))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	if mode != string(service.ModeFollowing) && mode != string(service.ModeTrending) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_MODE", "Mode must be one of: following, trending",
		))
	}

	items, err := h.feedService.ComposeFeed(service.FeedRequest{
		ViewerID: viewerID,
		Mode:     service.FeedMode(mode),
		Limit:    limit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(dto.SuccessResponse(dto.ToFeedItemDTOs(items), ""))
}

// respondServiceError maps service errors onto the HTTP error taxonomy.
// Unrecognized errors are treated as store unavailability.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", err.Error(),
		))
	case errors.Is(err, domain.ErrSelfFollow):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"SELF_FOLLOW", "You cannot follow yourself",
		))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse(
			"NOT_FOUND", "Resource not found",
		))
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse(
			"STORE_UNAVAILABLE", "Could not reach the content store",
		))
	}
}
