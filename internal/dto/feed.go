package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/service"
)

// FeedItemDTO represents a video in the feed
type FeedItemDTO struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  *string      `json:"description,omitempty"`
	VideoURL     string       `json:"video_url"`
	ThumbnailURL *string      `json:"thumbnail_url,omitempty"`
	Music        *string      `json:"music,omitempty"`
	Hashtags     []string     `json:"hashtags"`
	LikeCount    int64        `json:"like_count"`
	ViewCount    int64        `json:"view_count"`
	CommentCount int64        `json:"comment_count"`
	ShareCount   int64        `json:"share_count"`
	CreatedAt    time.Time    `json:"created_at"`
	User         *FeedUserDTO `json:"user"`
	IsLiked      bool         `json:"is_liked"`
	IsFollowing  bool         `json:"is_following"`
	Source       string       `json:"source"`
}

// FeedUserDTO represents author info in feed items
type FeedUserDTO struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	IsVerified  bool      `json:"is_verified"`
}

func ToFeedItemDTO(item service.FeedItem) FeedItemDTO {
	out := FeedItemDTO{
		ID:           item.Video.ID,
		Title:        item.Video.Title,
		Description:  item.Video.Description,
		VideoURL:     item.Video.VideoURL,
		ThumbnailURL: item.Video.ThumbnailURL,
		Music:        item.Video.Music,
		Hashtags:     item.Video.Hashtags,
		LikeCount:    item.Video.LikeCount,
		ViewCount:    item.Video.ViewCount,
		CommentCount: item.Video.CommentCount,
		ShareCount:   item.Video.ShareCount,
		CreatedAt:    item.Video.CreatedAt,
		IsLiked:      item.IsLiked,
		IsFollowing:  item.IsFollowing,
		Source:       string(item.Source),
	}
	if item.Video.User != nil {
		out.User = &FeedUserDTO{
			ID:          item.Video.User.ID,
			Username:    item.Video.User.Username,
			DisplayName: item.Video.User.DisplayName,
			AvatarURL:   item.Video.User.AvatarURL,
			IsVerified:  item.Video.User.IsVerified,
		}
	}
	return out
}

func ToFeedItemDTOs(items []service.FeedItem) []FeedItemDTO {
	out := make([]FeedItemDTO, len(items))
	for i, item := range items {
		out[i] = ToFeedItemDTO(item)
	}
	return out
}
