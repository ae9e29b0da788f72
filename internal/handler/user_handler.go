package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/dto"
	"github.com/saintpdi/tamara-backend/internal/middleware"
	"github.com/saintpdi/tamara-backend/internal/repository"
	"github.com/saintpdi/tamara-backend/internal/service"
)

type UserHandler struct {
	userRepo    *repository.UserRepository
	followRepo  *repository.FollowRepository
	videoRepo   *repository.VideoRepository
	feedService *service.FeedService
}

func NewUserHandler(
	userRepo *repository.UserRepository,
	followRepo *repository.FollowRepository,
	videoRepo *repository.VideoRepository,
	feedService *service.FeedService,
) *UserHandler {
	return &UserHandler{
		userRepo:    userRepo,
		followRepo:  followRepo,
		videoRepo:   videoRepo,
		feedService: feedService,
	}
}

// GetProfile handles GET /api/v1/users/:username
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)

	user, err := h.userRepo.FindByUsername(c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	followerCount, err := h.followRepo.FollowerCount(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	isFollowing := false
	if viewerID != nil {
		isFollowing, err = h.followRepo.IsFollowing(*viewerID, user.ID)
		if err != nil {
			return respondServiceError(c, err)
		}
	}

	return c.JSON(dto.SuccessResponse(dto.ToUserProfileDTO(user, followerCount, isFollowing), ""))
}

// GetVideos handles GET /api/v1/users/:username/videos
func (h *UserHandler) GetVideos(c *fiber.Ctx) error {
	user, err := h.userRepo.FindByUsername(c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	videos, err := h.videoRepo.ListByUser(user.ID, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(videos, ""))
}

// ToggleFollow handles POST /api/v1/users/:id/follow
func (h *UserHandler) ToggleFollow(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	creatorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid user id",
		))
	}

	// Creator must exist before the edge toggles.
	if _, err := h.userRepo.FindByID(creatorID); err != nil {
		return respondServiceError(c, err)
	}

	following, err := h.feedService.ToggleFollow(viewerID, creatorID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.FollowStateDTO{Following: following}, ""))
}

// GetFollowers handles GET /api/v1/users/:id/followers
func (h *UserHandler) GetFollowers(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid user id",
		))
	}

	page, limit := pagination(c)
	follows, total, err := h.followRepo.GetFollowers(userID, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	users := make([]dto.UserBriefDTO, 0, len(follows))
	for _, f := range follows {
		if f.Follower != nil {
			users = append(users, dto.ToUserBriefDTO(f.Follower))
		}
	}
	return c.JSON(dto.SuccessWithMeta(users, metaFor(page, limit, total)))
}

// GetFollowing handles GET /api/v1/users/:id/following
func (h *UserHandler) GetFollowing(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Invalid user id",
		))
	}

	page, limit := pagination(c)
	follows, total, err := h.followRepo.GetFollowing(userID, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	users := make([]dto.UserBriefDTO, 0, len(follows))
	for _, f := range follows {
		if f.Following != nil {
			users = append(users, dto.ToUserBriefDTO(f.Following))
		}
	}
	return c.JSON(dto.SuccessWithMeta(users, metaFor(page, limit, total)))
}

func pagination(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func metaFor(page, limit int, total int64) *dto.Meta {
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return &dto.Meta{
		CurrentPage: page,
		PerPage:     limit,
		TotalPages:  totalPages,
		TotalCount:  total,
	}
}
