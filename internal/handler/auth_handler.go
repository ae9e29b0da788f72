package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/saintpdi/tamara-backend/internal/auth"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"github.com/saintpdi/tamara-backend/internal/dto"
	"github.com/saintpdi/tamara-backend/internal/middleware"
	"github.com/saintpdi/tamara-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo   *repository.UserRepository
	jwtService *auth.JWTService
}

func NewAuthHandler(userRepo *repository.UserRepository, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, jwtService: jwtService}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}

	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if len(req.Username) < 3 || req.Email == "" || len(req.Password) < 8 || req.DisplayName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Username, email, display_name and a password of at least 8 characters are required",
		))
	}

	if _, err := h.userRepo.FindByUsername(req.Username); err == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"USERNAME_TAKEN", "Username is already taken",
		))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return respondServiceError(c, err)
	}
	if _, err := h.userRepo.FindByEmail(req.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"EMAIL_TAKEN", "Email is already registered",
		))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return respondServiceError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondServiceError(c, err)
	}

	user := domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}
	if err := h.userRepo.Create(&user); err != nil {
		return respondServiceError(c, err)
	}

	return h.respondWithToken(c, &user, fiber.StatusCreated)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}

	user, err := h.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"INVALID_CREDENTIALS", "Invalid email or password",
			))
		}
		return respondServiceError(c, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"INVALID_CREDENTIALS", "Invalid email or password",
		))
	}

	return h.respondWithToken(c, user, fiber.StatusOK)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	user, err := h.userRepo.FindByID(*userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToUserBriefDTO(user), ""))
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, user *domain.User, status int) error {
	token, err := h.jwtService.Generate(user.ID, user.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(status).JSON(dto.SuccessResponse(dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwtService.Expiry().Seconds()),
		User:        dto.ToUserBriefDTO(user),
	}, ""))
}
