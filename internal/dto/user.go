package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
)

// UserProfileDTO is the public profile view
type UserProfileDTO struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	Bio           *string   `json:"bio,omitempty"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	BannerURL     *string   `json:"banner_url,omitempty"`
	IsVerified    bool      `json:"is_verified"`
	FollowerCount int64     `json:"follower_count"`
	IsFollowing   bool      `json:"is_following"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToUserProfileDTO(u *domain.User, followerCount int64, isFollowing bool) UserProfileDTO {
	return UserProfileDTO{
		ID:            u.ID,
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		Bio:           u.Bio,
		AvatarURL:     u.AvatarURL,
		BannerURL:     u.BannerURL,
		IsVerified:    u.IsVerified,
		FollowerCount: followerCount,
		IsFollowing:   isFollowing,
		CreatedAt:     u.CreatedAt,
	}
}

func ToUserBriefDTO(u *domain.User) UserBriefDTO {
	return UserBriefDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		IsVerified:  u.IsVerified,
	}
}
