package handler

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/dto"
	"github.com/saintpdi/tamara-backend/internal/middleware"
	"github.com/saintpdi/tamara-backend/internal/storage"
)

const presignExpiry = 15 * time.Minute

var allowedContentTypes = map[string]string{
	"video/mp4":       "videos",
	"video/quicktime": "videos",
	"audio/mpeg":      "audio",
	"audio/mp4":       "audio",
	"image/jpeg":      "thumbnails",
	"image/png":       "thumbnails",
	"image/webp":      "thumbnails",
}

type UploadHandler struct {
	storage *storage.MinIOClient
}

func NewUploadHandler(storage *storage.MinIOClient) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Presign handles POST /api/v1/uploads/presign
func (h *UploadHandler) Presign(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	var req dto.PresignUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}

	prefix, ok := allowedContentTypes[req.ContentType]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"UNSUPPORTED_TYPE", "Content type is not supported for upload",
		))
	}

	ext := strings.ToLower(path.Ext(req.FileName))
	objectKey := fmt.Sprintf("%s/%s/%s%s", prefix, userID.String(), uuid.New().String(), ext)

	uploadURL, err := h.storage.GetPresignedPutURL(objectKey, presignExpiry)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(dto.SuccessResponse(dto.PresignUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		PublicURL: h.storage.GetPublicURL(objectKey),
		ExpiresIn: int64(presignExpiry.Seconds()),
	}, ""))
}

// PresignView handles GET /api/v1/uploads/presign-view
// Query params: object_key
func (h *UploadHandler) PresignView(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	objectKey := c.Query("object_key")
	if objectKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_INPUT", "Query parameter object_key is required",
		))
	}

	exists, err := h.storage.ObjectExists(objectKey)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse(
			"NOT_FOUND", "Object not found",
		))
	}

	viewURL, err := h.storage.GetPresignedGetURL(objectKey, presignExpiry)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.SuccessResponse(fiber.Map{
		"view_url":   viewURL,
		"expires_in": int64(presignExpiry.Seconds()),
	}, ""))
}
