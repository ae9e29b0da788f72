package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"github.com/saintpdi/tamara-backend/internal/repository"
)

// FeedMode selects the composition strategy for a feed page.
type FeedMode string

const (
	ModeFollowing FeedMode = "following"
	ModeTrending  FeedMode = "trending"
)

// FeedSource tags where a feed item came from, so clients can distinguish
// real content from the demo catalog shown on an empty platform.
type FeedSource string

const (
	SourceLive        FeedSource = "live"
	SourcePlaceholder FeedSource = "placeholder"
)

const (
	// DefaultFeedPageSize caps every feed page.
	DefaultFeedPageSize = 20

	// topHashtagCount is how many of the viewer's highest-frequency
	// hashtags drive trending discovery.
	topHashtagCount = 10
)

// ContentStore is the video access the feed engine needs.
type ContentStore interface {
	QueryPublic(filter repository.VideoFilter) ([]domain.Video, error)
	PublicHashtagsByAuthors(authorIDs []uuid.UUID) ([]domain.StringArray, error)
	FindByID(id uuid.UUID) (*domain.Video, error)
	IncrementViewCount(id uuid.UUID) error
}

// SocialGraph is the follow-edge access the feed engine needs.
type SocialGraph interface {
	ListFollowing(userID uuid.UUID) ([]uuid.UUID, error)
	FollowingSet(viewerID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	IsFollowing(followerID, followingID uuid.UUID) (bool, error)
	Follow(followerID, followingID uuid.UUID) error
	Unfollow(followerID, followingID uuid.UUID) error
}

// LikeStore is the like-edge access the feed engine needs.
type LikeStore interface {
	IsLiked(userID, videoID uuid.UUID) (bool, error)
	LikedSet(userID uuid.UUID, videoIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	Like(userID, videoID uuid.UUID) error
	Unlike(userID, videoID uuid.UUID) error
}

// FeedRequest describes one page of feed to compose. A nil ViewerID means
// the viewer is anonymous.
type FeedRequest struct {
	ViewerID *uuid.UUID
	Mode     FeedMode
	Limit    int
}

// FeedItem is a video decorated with the viewer's relationship to it.
type FeedItem struct {
	Video       domain.Video `json:"video"`
	IsLiked     bool         `json:"is_liked"`
	IsFollowing bool         `json:"is_following"`
	Source      FeedSource   `json:"source"`
}

// LikeState is the confirmed store state after a like toggle.
type LikeState struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// FeedService composes feed pages and applies engagement mutations. Each
// call reads the stores fresh; nothing is cached across requests.
type FeedService struct {
	videos  ContentStore
	follows SocialGraph
	likes   LikeStore
}

func NewFeedService(videos ContentStore, follows SocialGraph, likes LikeStore) *FeedService {
	return &FeedService{videos: videos, follows: follows, likes: likes}
}

// ComposeFeed builds one feed page for the requested mode. Store failures
// surface as errors with no partial page. A query that ran and found
// nothing gets the demo catalog; following mode for anonymous viewers or
// an empty follow set returns an empty page with no substitution.
func (s *FeedService) ComposeFeed(req FeedRequest) ([]FeedItem, error) {
	limit := req.Limit
	if limit <= 0 || limit > DefaultFeedPageSize {
		limit = DefaultFeedPageSize
	}

	var videos []domain.Video
	var err error
	switch req.Mode {
	case ModeFollowing:
		var queried bool
		videos, queried, err = s.followingFeed(req.ViewerID, limit)
		if err != nil {
			return nil, err
		}
		if !queried {
			return []FeedItem{}, nil
		}
	case ModeTrending:
		videos, err = s.trendingFeed(req.ViewerID, limit)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown feed mode %q", domain.ErrInvalidInput, req.Mode)
	}

	return s.merge(req.ViewerID, videos)
}

// followingFeed returns the latest public videos from accounts the viewer
// follows. Anonymous viewers and viewers following nobody get an empty
// page, with no fallback and no demo substitution; the second return value
// reports whether a content query actually ran.
func (s *FeedService) followingFeed(viewerID *uuid.UUID, limit int) ([]domain.Video, bool, error) {
	if viewerID == nil {
		return nil, false, nil
	}

	following, err := s.follows.ListFollowing(*viewerID)
	if err != nil {
		return nil, false, fmt.Errorf("list following: %w", err)
	}
	if len(following) == 0 {
		return nil, false, nil
	}

	videos, err := s.videos.QueryPublic(repository.VideoFilter{
		AuthorIn: following,
		Sort:     repository.SortCreatedDesc,
		Limit:    limit,
	})
	if err != nil {
		return nil, false, fmt.Errorf("query following feed: %w", err)
	}
	return videos, true, nil
}

// trendingFeed discovers videos from creators the viewer does not follow,
// ranked by likes and filtered to the viewer's hashtag affinity. Without a
// usable affinity profile it falls back to recent public videos.
func (s *FeedService) trendingFeed(viewerID *uuid.UUID, limit int) ([]domain.Video, error) {
	recent := func() ([]domain.Video, error) {
		videos, err := s.videos.QueryPublic(repository.VideoFilter{
			Sort:  repository.SortCreatedDesc,
			Limit: limit,
		})
		if err != nil {
			return nil, fmt.Errorf("query trending fallback: %w", err)
		}
		return videos, nil
	}

	if viewerID == nil {
		return recent()
	}

	following, err := s.follows.ListFollowing(*viewerID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	if len(following) == 0 {
		return recent()
	}

	tagSets, err := s.videos.PublicHashtagsByAuthors(following)
	if err != nil {
		return nil, fmt.Errorf("load hashtag profile: %w", err)
	}

	freq := make(map[string]int)
	for _, tags := range tagSets {
		for _, tag := range tags {
			freq[tag]++
		}
	}
	topTags := TopHashtags(freq, topHashtagCount)
	if len(topTags) == 0 {
		return recent()
	}

	videos, err := s.videos.QueryPublic(repository.VideoFilter{
		AuthorNotIn: following,
		HashtagsAny: topTags,
		Sort:        repository.SortLikesDesc,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query trending feed: %w", err)
	}
	return videos, nil
}

// TopHashtags returns the n highest-frequency tags, most frequent first.
// Ties break lexicographically so the result is deterministic.
func TopHashtags(freq map[string]int, n int) []string {
	tags := make([]string, 0, len(freq))
	for tag := range freq {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if freq[tags[i]] != freq[tags[j]] {
			return freq[tags[i]] > freq[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

// merge decorates videos with the viewer's like and follow flags, using one
// batched lookup per flag type. When the query ran but yielded nothing, the
// demo catalog stands in so a fresh install never shows a blank feed.
func (s *FeedService) merge(viewerID *uuid.UUID, videos []domain.Video) ([]FeedItem, error) {
	if len(videos) == 0 {
		items := make([]FeedItem, 0, len(placeholderVideos))
		for _, v := range PlaceholderVideos() {
			items = append(items, FeedItem{Video: v, Source: SourcePlaceholder})
		}
		return items, nil
	}

	var liked, following map[uuid.UUID]bool
	if viewerID != nil {
		videoIDs := make([]uuid.UUID, len(videos))
		authorIDs := make([]uuid.UUID, len(videos))
		for i, v := range videos {
			videoIDs[i] = v.ID
			authorIDs[i] = v.UserID
		}

		var err error
		liked, err = s.likes.LikedSet(*viewerID, videoIDs)
		if err != nil {
			return nil, fmt.Errorf("load like flags: %w", err)
		}
		following, err = s.follows.FollowingSet(*viewerID, authorIDs)
		if err != nil {
			return nil, fmt.Errorf("load follow flags: %w", err)
		}
	}

	items := make([]FeedItem, len(videos))
	for i, v := range videos {
		items[i] = FeedItem{
			Video:       v,
			IsLiked:     liked[v.ID],
			IsFollowing: following[v.UserID],
			Source:      SourceLive,
		}
	}
	return items, nil
}

// ToggleLike flips the viewer's like on a video and returns the confirmed
// state read back from the store, never a locally guessed one.
func (s *FeedService) ToggleLike(viewerID *uuid.UUID, videoID uuid.UUID) (*LikeState, error) {
	if viewerID == nil {
		return nil, fmt.Errorf("%w: like requires an authenticated viewer", domain.ErrInvalidInput)
	}
	if videoID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing video id", domain.ErrInvalidInput)
	}

	if _, err := s.videos.FindByID(videoID); err != nil {
		return nil, err
	}

	liked, err := s.likes.IsLiked(*viewerID, videoID)
	if err != nil {
		return nil, fmt.Errorf("check like state: %w", err)
	}

	if liked {
		err = s.likes.Unlike(*viewerID, videoID)
	} else {
		err = s.likes.Like(*viewerID, videoID)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	video, err := s.videos.FindByID(videoID)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: !liked, LikeCount: video.LikeCount}, nil
}

// ToggleFollow flips the viewer's follow edge toward a creator and returns
// the confirmed new state. Self-follows are rejected before any store call.
func (s *FeedService) ToggleFollow(viewerID *uuid.UUID, creatorID uuid.UUID) (bool, error) {
	if viewerID == nil {
		return false, fmt.Errorf("%w: follow requires an authenticated viewer", domain.ErrInvalidInput)
	}
	if creatorID == uuid.Nil {
		return false, fmt.Errorf("%w: missing creator id", domain.ErrInvalidInput)
	}
	if *viewerID == creatorID {
		return false, domain.ErrSelfFollow
	}

	following, err := s.follows.IsFollowing(*viewerID, creatorID)
	if err != nil {
		return false, fmt.Errorf("check follow state: %w", err)
	}

	if following {
		err = s.follows.Unfollow(*viewerID, creatorID)
	} else {
		err = s.follows.Follow(*viewerID, creatorID)
	}
	if err != nil {
		return false, fmt.Errorf("toggle follow: %w", err)
	}
	return !following, nil
}

// RecordView bumps the video's view counter. Works for anonymous viewers;
// each call counts, with no dedup window.
func (s *FeedService) RecordView(videoID uuid.UUID) error {
	if videoID == uuid.Nil {
		return fmt.Errorf("%w: missing video id", domain.ErrInvalidInput)
	}
	return s.videos.IncrementViewCount(videoID)
}
