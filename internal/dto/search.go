package dto

// SearchResponse groups search results by kind
type SearchResponse struct {
	Videos   []FeedItemDTO  `json:"videos"`
	Users    []UserBriefDTO `json:"users"`
	Podcasts []PodcastDTO   `json:"podcasts"`
}

// TrendingUserDTO is a creator in the discovery list
type TrendingUserDTO struct {
	UserBriefDTO
	FollowerCount int64 `json:"follower_count"`
	IsFollowing   bool  `json:"is_following"`
}
