package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"github.com/saintpdi/tamara-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Serialize writes so concurrent tests don't trip SQLITE_BUSY.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.User{}, &domain.Video{}, &domain.Follow{}, &domain.Like{},
		&domain.Podcast{}, &domain.Subscription{}, &domain.Tip{},
	)
	require.NoError(t, err)
	return db
}

func newTestService(t *testing.T) (*FeedService, *gorm.DB) {
	db := setupTestDB(t)
	svc := NewFeedService(
		repository.NewVideoRepository(db),
		repository.NewFollowRepository(db),
		repository.NewLikeRepository(db),
	)
	return svc, db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		DisplayName:  username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestVideo(t *testing.T, db *gorm.DB, author *domain.User, title string, opts ...func(*domain.Video)) *domain.Video {
	video := &domain.Video{
		UserID:     author.ID,
		Title:      title,
		VideoURL:   "https://cdn.example.com/" + title + ".mp4",
		Visibility: domain.VisibilityPublic,
		Hashtags:   domain.StringArray{},
	}
	for _, opt := range opts {
		opt(video)
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

func withHashtags(tags ...string) func(*domain.Video) {
	return func(v *domain.Video) { v.Hashtags = tags }
}

func withLikes(n int64) func(*domain.Video) {
	return func(v *domain.Video) { v.LikeCount = n }
}

func withVisibility(vis domain.VisibilityLevel) func(*domain.Video) {
	return func(v *domain.Video) { v.Visibility = vis }
}

func followUser(t *testing.T, db *gorm.DB, follower, following *domain.User) {
	require.NoError(t, db.Create(&domain.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
	}).Error)
}

func liveItems(items []FeedItem) []FeedItem {
	var out []FeedItem
	for _, item := range items {
		if item.Source == SourceLive {
			out = append(out, item)
		}
	}
	return out
}

func TestFollowingFeed_OnlyFollowedAuthors(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")
	followUser(t, db, viewer, followed)

	createTestVideo(t, db, followed, "from-followed")
	createTestVideo(t, db, stranger, "from-stranger")

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeFollowing})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "from-followed", items[0].Video.Title)
	assert.Equal(t, SourceLive, items[0].Source)
	assert.True(t, items[0].IsFollowing)
}

func TestFollowingFeed_NewestFirst(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	author := createTestUser(t, db, "author")
	followUser(t, db, viewer, author)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		v := createTestVideo(t, db, author, fmt.Sprintf("video-%d", i))
		// Stagger timestamps explicitly; inserts land in the same tick.
		require.NoError(t, db.Model(v).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeFollowing})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "video-2", items[0].Video.Title)
	assert.Equal(t, "video-0", items[2].Video.Title)
}

func TestFollowingFeed_ExcludesNonPublic(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	author := createTestUser(t, db, "author")
	followUser(t, db, viewer, author)

	createTestVideo(t, db, author, "public-one")
	createTestVideo(t, db, author, "private-one", withVisibility(domain.VisibilityPrivate))
	createTestVideo(t, db, author, "followers-one", withVisibility(domain.VisibilityFollowersOnly))

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeFollowing})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "public-one", items[0].Video.Title)
}

func TestFollowingFeed_EmptyFollowSetIsEmpty(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	other := createTestUser(t, db, "other")
	createTestVideo(t, db, other, "unrelated")

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeFollowing})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFollowingFeed_AnonymousIsEmpty(t *testing.T) {
	svc, db := newTestService(t)

	author := createTestUser(t, db, "author")
	createTestVideo(t, db, author, "public-one")

	items, err := svc.ComposeFeed(FeedRequest{Mode: ModeFollowing})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFollowingFeed_QueriedButEmptyGetsDemoCatalog(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	quiet := createTestUser(t, db, "quiet")
	followUser(t, db, viewer, quiet)

	// The followed creator has nothing public, so the query runs and
	// returns zero rows.
	createTestVideo(t, db, quiet, "hidden", withVisibility(domain.VisibilityPrivate))

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeFollowing})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.Equal(t, SourcePlaceholder, item.Source)
	}
	assert.Empty(t, liveItems(items))
}

func TestTrendingFeed_ExcludesFollowedCreators(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")
	followUser(t, db, viewer, followed)

	createTestVideo(t, db, followed, "followed-video", withHashtags("cooking"))
	createTestVideo(t, db, stranger, "stranger-video", withHashtags("cooking"))

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeTrending})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "stranger-video", items[0].Video.Title)
	assert.False(t, items[0].IsFollowing)
}

func TestTrendingFeed_HashtagAffinity(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	chef := createTestUser(t, db, "chef")
	cookStranger := createTestUser(t, db, "cook_stranger")
	clownStranger := createTestUser(t, db, "clown_stranger")
	followUser(t, db, viewer, chef)

	// Viewer's affinity profile comes from chef's tags.
	createTestVideo(t, db, chef, "chef-1", withHashtags("cooking", "pasta"))
	createTestVideo(t, db, chef, "chef-2", withHashtags("cooking"))

	createTestVideo(t, db, cookStranger, "overlap", withHashtags("cooking", "dinner"), withLikes(10))
	createTestVideo(t, db, clownStranger, "no-overlap", withHashtags("circus"), withLikes(999))

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeTrending})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "overlap", items[0].Video.Title)
}

func TestTrendingFeed_RanksByLikes(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	chef := createTestUser(t, db, "chef")
	a := createTestUser(t, db, "author_a")
	b := createTestUser(t, db, "author_b")
	followUser(t, db, viewer, chef)

	createTestVideo(t, db, chef, "profile", withHashtags("cooking"))
	createTestVideo(t, db, a, "modest", withHashtags("cooking"), withLikes(5))
	createTestVideo(t, db, b, "popular", withHashtags("cooking"), withLikes(500))

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeTrending})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "popular", items[0].Video.Title)
	assert.Equal(t, "modest", items[1].Video.Title)
}

func TestTrendingFeed_FindsMatchRankedPastFirstBatch(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	chef := createTestUser(t, db, "chef")
	decoyAuthor := createTestUser(t, db, "decoy_author")
	matchAuthor := createTestUser(t, db, "match_author")
	followUser(t, db, viewer, chef)

	createTestVideo(t, db, chef, "profile", withHashtags("cooking"))

	// 65 non-overlapping videos outrank the single real match, pushing it
	// past the first like-sorted candidate batch.
	for i := 0; i < 65; i++ {
		createTestVideo(t, db, decoyAuthor, "decoy",
			withHashtags("circus"), withLikes(int64(1000+i)))
	}
	createTestVideo(t, db, matchAuthor, "real-match",
		withHashtags("cooking"), withLikes(1))

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeTrending})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "real-match", items[0].Video.Title)
	assert.Equal(t, SourceLive, items[0].Source)
}

func TestTrendingFeed_AnonymousFallsBackToRecent(t *testing.T) {
	svc, db := newTestService(t)

	author := createTestUser(t, db, "author")
	createTestVideo(t, db, author, "recent-video", withHashtags("anything"))

	items, err := svc.ComposeFeed(FeedRequest{Mode: ModeTrending})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "recent-video", items[0].Video.Title)
	assert.Equal(t, SourceLive, items[0].Source)
}

func TestTrendingFeed_NoHashtagProfileFallsBackToRecent(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	quiet := createTestUser(t, db, "quiet")
	stranger := createTestUser(t, db, "stranger")
	followUser(t, db, viewer, quiet)

	// Followed creator has videos but no hashtags, so no profile forms.
	createTestVideo(t, db, quiet, "untagged")
	createTestVideo(t, db, stranger, "fresh")

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeTrending})
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestComposeFeed_PageSizeCap(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	author := createTestUser(t, db, "author")
	followUser(t, db, viewer, author)

	for i := 0; i < DefaultFeedPageSize+5; i++ {
		createTestVideo(t, db, author, fmt.Sprintf("video-%02d", i))
	}

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeFollowing})
	require.NoError(t, err)
	assert.Len(t, items, DefaultFeedPageSize)

	items, err = svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeFollowing, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, items, DefaultFeedPageSize)
}

func TestComposeFeed_UnknownModeRejected(t *testing.T) {
	svc, db := newTestService(t)
	viewer := createTestUser(t, db, "viewer")

	_, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: "hot"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComposeFeed_MergesLikeAndFollowFlags(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	author := createTestUser(t, db, "author")
	followUser(t, db, viewer, author)

	likedVideo := createTestVideo(t, db, author, "liked-one")
	createTestVideo(t, db, author, "plain-one")
	require.NoError(t, db.Create(&domain.Like{UserID: viewer.ID, VideoID: likedVideo.ID}).Error)

	items, err := svc.ComposeFeed(FeedRequest{ViewerID: &viewer.ID, Mode: ModeFollowing})
	require.NoError(t, err)
	require.Len(t, items, 2)

	byTitle := map[string]FeedItem{}
	for _, item := range items {
		byTitle[item.Video.Title] = item
	}
	assert.True(t, byTitle["liked-one"].IsLiked)
	assert.False(t, byTitle["plain-one"].IsLiked)
	assert.True(t, byTitle["liked-one"].IsFollowing)
	assert.True(t, byTitle["plain-one"].IsFollowing)
}

func TestComposeFeed_EmptyPlatformGetsDemoCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	items, err := svc.ComposeFeed(FeedRequest{Mode: ModeTrending})
	require.NoError(t, err)
	require.Len(t, items, len(PlaceholderVideos()))
	for _, item := range items {
		assert.Equal(t, SourcePlaceholder, item.Source)
		assert.False(t, item.IsLiked)
		assert.False(t, item.IsFollowing)
		assert.NotNil(t, item.Video.User)
	}
}

func TestTopHashtags(t *testing.T) {
	freq := map[string]int{
		"cooking": 5,
		"dance":   5,
		"art":     2,
		"fitness": 9,
	}

	top := TopHashtags(freq, 3)
	assert.Equal(t, []string{"fitness", "cooking", "dance"}, top)

	top = TopHashtags(freq, 10)
	assert.Equal(t, []string{"fitness", "cooking", "dance", "art"}, top)

	assert.Empty(t, TopHashtags(map[string]int{}, 5))
}

func TestTopHashtags_CaseSensitive(t *testing.T) {
	freq := map[string]int{"Dance": 3, "dance": 1}
	top := TopHashtags(freq, 10)
	assert.Equal(t, []string{"Dance", "dance"}, top)
}

func TestToggleLike_Involution(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	author := createTestUser(t, db, "author")
	video := createTestVideo(t, db, author, "target", withLikes(7))

	state, err := svc.ToggleLike(&viewer.ID, video.ID)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, int64(8), state.LikeCount)

	state, err = svc.ToggleLike(&viewer.ID, video.ID)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, int64(7), state.LikeCount)

	var edges int64
	db.Model(&domain.Like{}).Where("user_id = ?", viewer.ID).Count(&edges)
	assert.Equal(t, int64(0), edges)
}

func TestToggleLike_UnknownVideo(t *testing.T) {
	svc, db := newTestService(t)
	viewer := createTestUser(t, db, "viewer")

	_, err := svc.ToggleLike(&viewer.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToggleLike_RequiresViewer(t *testing.T) {
	svc, db := newTestService(t)
	author := createTestUser(t, db, "author")
	video := createTestVideo(t, db, author, "target")

	_, err := svc.ToggleLike(nil, video.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	viewer := createTestUser(t, db, "viewer")
	_, err = svc.ToggleLike(&viewer.ID, uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToggleFollow_Alternates(t *testing.T) {
	svc, db := newTestService(t)

	viewer := createTestUser(t, db, "viewer")
	creator := createTestUser(t, db, "creator")

	following, err := svc.ToggleFollow(&viewer.ID, creator.ID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = svc.ToggleFollow(&viewer.ID, creator.ID)
	require.NoError(t, err)
	assert.False(t, following)

	var edges int64
	db.Model(&domain.Follow{}).Where("follower_id = ?", viewer.ID).Count(&edges)
	assert.Equal(t, int64(0), edges)
}

func TestToggleFollow_SelfFollowRejectedBeforeStore(t *testing.T) {
	svc, db := newTestService(t)
	viewer := createTestUser(t, db, "viewer")

	_, err := svc.ToggleFollow(&viewer.ID, viewer.ID)
	assert.ErrorIs(t, err, domain.ErrSelfFollow)

	var edges int64
	db.Model(&domain.Follow{}).Count(&edges)
	assert.Equal(t, int64(0), edges)
}

func TestToggleFollow_RequiresViewer(t *testing.T) {
	svc, db := newTestService(t)
	creator := createTestUser(t, db, "creator")

	_, err := svc.ToggleFollow(nil, creator.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordView(t *testing.T) {
	svc, db := newTestService(t)

	author := createTestUser(t, db, "author")
	video := createTestVideo(t, db, author, "watched")

	require.NoError(t, svc.RecordView(video.ID))
	require.NoError(t, svc.RecordView(video.ID))

	var got domain.Video
	require.NoError(t, db.First(&got, "id = ?", video.ID).Error)
	assert.Equal(t, int64(2), got.ViewCount)

	assert.ErrorIs(t, svc.RecordView(uuid.New()), domain.ErrNotFound)
	assert.ErrorIs(t, svc.RecordView(uuid.Nil), domain.ErrInvalidInput)
}

func TestRecordView_ConcurrentIncrementsAllLand(t *testing.T) {
	svc, db := newTestService(t)

	author := createTestUser(t, db, "author")
	video := createTestVideo(t, db, author, "viral")

	const viewers = 25
	var wg sync.WaitGroup
	wg.Add(viewers)
	for i := 0; i < viewers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.RecordView(video.ID))
		}()
	}
	wg.Wait()

	var got domain.Video
	require.NoError(t, db.First(&got, "id = ?", video.ID).Error)
	assert.Equal(t, int64(viewers), got.ViewCount)
}
