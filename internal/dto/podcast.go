package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
)

type CreatePodcastRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Description     *string `json:"description,omitempty"`
	ContentType     string  `json:"content_type" validate:"required,oneof=audio_podcast video_podcast"`
	ContentURL      string  `json:"content_url" validate:"required,url"`
	ThumbnailURL    *string `json:"thumbnail_url,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
	EpisodeNumber   *int    `json:"episode_number,omitempty"`
	SeasonNumber    *int    `json:"season_number,omitempty"`
	MonthlyFeeCents *int64  `json:"monthly_fee_cents,omitempty"`
}

type PodcastDTO struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	Description     *string      `json:"description,omitempty"`
	ContentType     string       `json:"content_type"`
	ContentURL      string       `json:"content_url"`
	ThumbnailURL    *string      `json:"thumbnail_url,omitempty"`
	DurationSeconds *int         `json:"duration_seconds,omitempty"`
	EpisodeNumber   *int         `json:"episode_number,omitempty"`
	SeasonNumber    *int         `json:"season_number,omitempty"`
	LikeCount       int64        `json:"like_count"`
	PlayCount       int64        `json:"play_count"`
	SubscriberCount int64        `json:"subscriber_count"`
	MonthlyFeeCents *int64       `json:"monthly_fee_cents,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	User            *FeedUserDTO `json:"user,omitempty"`
	IsSubscribed    bool         `json:"is_subscribed"`
}

func ToPodcastDTO(p domain.Podcast, isSubscribed bool) PodcastDTO {
	out := PodcastDTO{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		ContentType:     string(p.ContentType),
		ContentURL:      p.ContentURL,
		ThumbnailURL:    p.ThumbnailURL,
		DurationSeconds: p.DurationSeconds,
		EpisodeNumber:   p.EpisodeNumber,
		SeasonNumber:    p.SeasonNumber,
		LikeCount:       p.LikeCount,
		PlayCount:       p.PlayCount,
		SubscriberCount: p.SubscriberCount,
		MonthlyFeeCents: p.MonthlyFeeCents,
		CreatedAt:       p.CreatedAt,
		IsSubscribed:    isSubscribed,
	}
	if p.User != nil {
		out.User = &FeedUserDTO{
			ID:          p.User.ID,
			Username:    p.User.Username,
			DisplayName: p.User.DisplayName,
			AvatarURL:   p.User.AvatarURL,
			IsVerified:  p.User.IsVerified,
		}
	}
	return out
}

type SendTipRequest struct {
	CreatorID   uuid.UUID `json:"creator_id" validate:"required"`
	AmountCents int64     `json:"amount_cents" validate:"required,min=100"`
	Message     *string   `json:"message,omitempty" validate:"omitempty,max=280"`
}
