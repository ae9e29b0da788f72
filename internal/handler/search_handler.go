package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/dto"
	"github.com/saintpdi/tamara-backend/internal/middleware"
	"github.com/saintpdi/tamara-backend/internal/repository"
	"github.com/saintpdi/tamara-backend/internal/service"
)

type SearchHandler struct {
	videoRepo   *repository.VideoRepository
	userRepo    *repository.UserRepository
	likeRepo    *repository.LikeRepository
	followRepo  *repository.FollowRepository
	podcastRepo *repository.PodcastRepository
	subRepo     *repository.SubscriptionRepository
}

func NewSearchHandler(
	videoRepo *repository.VideoRepository,
	userRepo *repository.UserRepository,
	likeRepo *repository.LikeRepository,
	followRepo *repository.FollowRepository,
	podcastRepo *repository.PodcastRepository,
	subRepo *repository.SubscriptionRepository,
) *SearchHandler {
	return &SearchHandler{
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		followRepo:  followRepo,
		podcastRepo: podcastRepo,
		subRepo:     subRepo,
	}
}

// Search handles GET /api/v1/search
// Query params: q, limit
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Query parameter q is required",
		))
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	videos, err := h.videoRepo.SearchPublic(q, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	users, err := h.userRepo.Search(q, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	items := make([]service.FeedItem, len(videos))
	for i, v := range videos {
		items[i] = service.FeedItem{Video: v, Source: service.SourceLive}
	}
	if viewerID != nil && len(videos) > 0 {
		videoIDs := make([]uuid.UUID, len(videos))
		authorIDs := make([]uuid.UUID, len(videos))
		for i, v := range videos {
			videoIDs[i] = v.ID
			authorIDs[i] = v.UserID
		}
		liked, err := h.likeRepo.LikedSet(*viewerID, videoIDs)
		if err != nil {
			return respondServiceError(c, err)
		}
		following, err := h.followRepo.FollowingSet(*viewerID, authorIDs)
		if err != nil {
			return respondServiceError(c, err)
		}
		for i := range items {
			items[i].IsLiked = liked[items[i].Video.ID]
			items[i].IsFollowing = following[items[i].Video.UserID]
		}
	}

	userDTOs := make([]dto.UserBriefDTO, len(users))
	for i := range users {
		userDTOs[i] = dto.ToUserBriefDTO(&users[i])
	}

	podcasts, err := h.podcastRepo.Search(q, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	var subscribed map[uuid.UUID]bool
	if viewerID != nil && len(podcasts) > 0 {
		ids := make([]uuid.UUID, len(podcasts))
		for i, p := range podcasts {
			ids[i] = p.ID
		}
		subscribed, err = h.subRepo.SubscribedSet(*viewerID, ids)
		if err != nil {
			return respondServiceError(c, err)
		}
	}
	podcastDTOs := make([]dto.PodcastDTO, len(podcasts))
	for i, p := range podcasts {
		podcastDTOs[i] = dto.ToPodcastDTO(p, subscribed[p.ID])
	}

	return c.JSON(dto.SuccessResponse(dto.SearchResponse{
		Videos:   dto.ToFeedItemDTOs(items),
		Users:    userDTOs,
		Podcasts: podcastDTOs,
	}, ""))
}

// TrendingUsers handles GET /api/v1/search/trending-users
func (h *SearchHandler) TrendingUsers(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	users, err := h.userRepo.ListVerified(limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	var following map[uuid.UUID]bool
	if viewerID != nil && len(users) > 0 {
		ids := make([]uuid.UUID, len(users))
		for i := range users {
			ids[i] = users[i].ID
		}
		following, err = h.followRepo.FollowingSet(*viewerID, ids)
		if err != nil {
			return respondServiceError(c, err)
		}
	}

	out := make([]dto.TrendingUserDTO, len(users))
	for i := range users {
		count, err := h.followRepo.FollowerCount(users[i].ID)
		if err != nil {
			return respondServiceError(c, err)
		}
		out[i] = dto.TrendingUserDTO{
			UserBriefDTO:  dto.ToUserBriefDTO(&users[i]),
			FollowerCount: count,
			IsFollowing:   following[users[i].ID],
		}
	}
	return c.JSON(dto.SuccessResponse(out, ""))
}
