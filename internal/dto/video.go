package dto

type CreateVideoRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  *string  `json:"description,omitempty"`
	VideoURL     string   `json:"video_url" validate:"required,url"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	Music        *string  `json:"music,omitempty"`
	Hashtags     []string `json:"hashtags,omitempty"`
	Visibility   string   `json:"visibility,omitempty"`
}

type LikeStateDTO struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type FollowStateDTO struct {
	Following bool `json:"following"`
}
