package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"github.com/saintpdi/tamara-backend/internal/dto"
	"github.com/saintpdi/tamara-backend/internal/middleware"
	"github.com/saintpdi/tamara-backend/internal/repository"
)

type PodcastHandler struct {
	podcastRepo *repository.PodcastRepository
	subRepo     *repository.SubscriptionRepository
	userRepo    *repository.UserRepository
}

func NewPodcastHandler(
	podcastRepo *repository.PodcastRepository,
	subRepo *repository.SubscriptionRepository,
	userRepo *repository.UserRepository,
) *PodcastHandler {
	return &PodcastHandler{podcastRepo: podcastRepo, subRepo: subRepo, userRepo: userRepo}
}

// Create handles POST /api/v1/podcasts
func (h *PodcastHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	var req dto.CreatePodcastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}
	if req.Title == "" || req.ContentURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Title and content_url are required",
		))
	}

	contentType := domain.PodcastContentType(req.ContentType)
	if contentType != domain.PodcastAudio && contentType != domain.PodcastVideo {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "content_type must be audio_podcast or video_podcast",
		))
	}

	podcast := domain.Podcast{
		UserID:          *userID,
		Title:           req.Title,
		Description:     req.Description,
		ContentType:     contentType,
		ContentURL:      req.ContentURL,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.DurationSeconds,
		EpisodeNumber:   req.EpisodeNumber,
		SeasonNumber:    req.SeasonNumber,
		MonthlyFeeCents: req.MonthlyFeeCents,
	}
	if err := h.podcastRepo.Create(&podcast); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(
		dto.ToPodcastDTO(podcast, false), "Podcast created",
	))
}

// List handles GET /api/v1/podcasts
// Query params: user_id, limit
func (h *PodcastHandler) List(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	var creatorID *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"INVALID_INPUT", "Invalid creator id",
			))
		}
		creatorID = &id
	}

	podcasts, err := h.podcastRepo.List(creatorID, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	var subscribed map[uuid.UUID]bool
	if viewerID != nil {
		ids := make([]uuid.UUID, len(podcasts))
		for i, p := range podcasts {
			ids[i] = p.ID
		}
		subscribed, err = h.subRepo.SubscribedSet(*viewerID, ids)
		if err != nil {
			return respondServiceError(c, err)
		}
	}

	out := make([]dto.PodcastDTO, len(podcasts))
	for i, p := range podcasts {
		out[i] = dto.ToPodcastDTO(p, subscribed[p.ID])
	}
	return c.JSON(dto.SuccessResponse(out, ""))
}

// RecordPlay handles POST /api/v1/podcasts/:id/play
func (h *PodcastHandler) RecordPlay(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid podcast id",
		))
	}

	if err := h.podcastRepo.IncrementPlayCount(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "Play recorded"))
}

// Subscribe handles POST /api/v1/podcasts/:id/subscribe
func (h *PodcastHandler) Subscribe(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	if viewerID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid podcast id",
		))
	}

	if _, err := h.podcastRepo.FindByID(id); err != nil {
		return respondServiceError(c, err)
	}
	if err := h.subRepo.Subscribe(*viewerID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "Subscribed"))
}

// Unsubscribe handles DELETE /api/v1/podcasts/:id/subscribe
func (h *PodcastHandler) Unsubscribe(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	if viewerID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid podcast id",
		))
	}

	if err := h.subRepo.Unsubscribe(*viewerID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "Unsubscribed"))
}

// SendTip handles POST /api/v1/tips
func (h *PodcastHandler) SendTip(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	if viewerID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	var req dto.SendTipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}
	if req.AmountCents < 100 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Minimum tip is 100 cents",
		))
	}
	if req.CreatorID == *viewerID {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "You cannot tip yourself",
		))
	}

	if _, err := h.userRepo.FindByID(req.CreatorID); err != nil {
		return respondServiceError(c, err)
	}

	tip := domain.Tip{
		SenderID:    *viewerID,
		CreatorID:   req.CreatorID,
		AmountCents: req.AmountCents,
		Currency:    "usd",
		Message:     req.Message,
		Status:      domain.TipPending,
	}
	if err := h.subRepo.CreateTip(&tip); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(tip, "Tip created"))
}
