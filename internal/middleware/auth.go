package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/auth"
	"github.com/saintpdi/tamara-backend/internal/dto"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
}

func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Required rejects requests without a valid bearer token.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"UNAUTHORIZED",
				"Missing token",
			))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"UNAUTHORIZED",
				"Invalid token format",
			))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.jwtService.Validate(tokenString)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
					"TOKEN_EXPIRED",
					"Token has expired",
				))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"INVALID_TOKEN",
				"Invalid token",
			))
		}

		userID, err := uuid.Parse(claims.Sub)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"INVALID_TOKEN",
				"Invalid token",
			))
		}
		c.Locals("userID", userID)
		c.Locals("username", claims.Username)

		return c.Next()
	}
}

// Optional attaches identity when a valid token is present but lets
// anonymous requests through. Feed reads use this: anonymous viewers are a
// supported state, not an error.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.jwtService.Validate(tokenString)
		if err != nil {
			return c.Next()
		}

		userID, err := uuid.Parse(claims.Sub)
		if err != nil {
			return c.Next()
		}
		c.Locals("userID", userID)
		c.Locals("username", claims.Username)

		return c.Next()
	}
}

// GetUserID returns the authenticated user's id, or nil for anonymous.
func GetUserID(c *fiber.Ctx) *uuid.UUID {
	userID := c.Locals("userID")
	if userID == nil {
		return nil
	}
	id := userID.(uuid.UUID)
	return &id
}
