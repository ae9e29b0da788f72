package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"github.com/saintpdi/tamara-backend/internal/dto"
	"github.com/saintpdi/tamara-backend/internal/middleware"
	"github.com/saintpdi/tamara-backend/internal/repository"
	"github.com/saintpdi/tamara-backend/internal/service"
	"github.com/saintpdi/tamara-backend/internal/storage"
)

type VideoHandler struct {
	videoRepo   *repository.VideoRepository
	feedService *service.FeedService
	storage     *storage.MinIOClient
}

func NewVideoHandler(videoRepo *repository.VideoRepository, feedService *service.FeedService, storage *storage.MinIOClient) *VideoHandler {
	return &VideoHandler{videoRepo: videoRepo, feedService: feedService, storage: storage}
}

// Create handles POST /api/v1/videos
func (h *VideoHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	var req dto.CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}
	if req.Title == "" || req.VideoURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Title and video_url are required",
		))
	}

	visibility := domain.VisibilityPublic
	switch domain.VisibilityLevel(req.Visibility) {
	case domain.VisibilityPrivate:
		visibility = domain.VisibilityPrivate
	case domain.VisibilityFollowersOnly:
		visibility = domain.VisibilityFollowersOnly
	}

	video := domain.Video{
		UserID:       *userID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Music:        req.Music,
		Hashtags:     req.Hashtags,
		Visibility:   visibility,
	}
	if video.Hashtags == nil {
		video.Hashtags = domain.StringArray{}
	}

	if err := h.videoRepo.Create(&video); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(video, "Video created"))
}

// Get handles GET /api/v1/videos/:id
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid video id",
		))
	}

	video, err := h.videoRepo.FindByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(video, ""))
}

// Delete handles DELETE /api/v1/videos/:id
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid video id",
		))
	}

	video, err := h.videoRepo.FindByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := h.videoRepo.SoftDelete(id, *userID); err != nil {
		return respondServiceError(c, err)
	}

	// Stored media cleanup is best effort; the row is already gone from
	// every query and an orphaned object is harmless.
	_ = h.storage.DeleteByPublicURL(video.VideoURL)
	if video.ThumbnailURL != nil {
		_ = h.storage.DeleteByPublicURL(*video.ThumbnailURL)
	}

	return c.JSON(dto.SuccessResponse(nil, "Video deleted"))
}

// ToggleLike handles POST /api/v1/videos/:id/like
func (h *VideoHandler) ToggleLike(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid video id",
		))
	}

	state, err := h.feedService.ToggleLike(viewerID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.LikeStateDTO{
		Liked:     state.Liked,
		LikeCount: state.LikeCount,
	}, ""))
}

// RecordView handles POST /api/v1/videos/:id/view
func (h *VideoHandler) RecordView(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid video id",
		))
	}

	if err := h.feedService.RecordView(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "View recorded"))
}

// RecordShare handles POST /api/v1/videos/:id/share
func (h *VideoHandler) RecordShare(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid video id",
		))
	}

	if err := h.videoRepo.IncrementShareCount(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "Share recorded"))
}
