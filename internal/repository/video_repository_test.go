package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryPublic_VisibilityAndAuthorFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedVideo(t, db, alice, "alice-public")
	seedVideo(t, db, alice, "alice-private", func(v *domain.Video) {
		v.Visibility = domain.VisibilityPrivate
	})
	seedVideo(t, db, bob, "bob-public")

	videos, err := repo.QueryPublic(VideoFilter{AuthorIn: []uuid.UUID{alice.ID}})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "alice-public", videos[0].Title)
	require.NotNil(t, videos[0].User)
	assert.Equal(t, "alice", videos[0].User.Username)

	videos, err = repo.QueryPublic(VideoFilter{AuthorNotIn: []uuid.UUID{alice.ID}})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "bob-public", videos[0].Title)
}

func TestQueryPublic_HashtagOverlapKeepsSortOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	author := seedUser(t, db, "author")

	seedVideo(t, db, author, "tagged-low", func(v *domain.Video) {
		v.Hashtags = domain.StringArray{"cooking"}
		v.LikeCount = 5
	})
	seedVideo(t, db, author, "untagged-high", func(v *domain.Video) {
		v.LikeCount = 100
	})
	seedVideo(t, db, author, "tagged-high", func(v *domain.Video) {
		v.Hashtags = domain.StringArray{"cooking", "pasta"}
		v.LikeCount = 50
	})

	videos, err := repo.QueryPublic(VideoFilter{
		HashtagsAny: []string{"cooking"},
		Sort:        SortLikesDesc,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "tagged-high", videos[0].Title)
	assert.Equal(t, "tagged-low", videos[1].Title)
}

func TestQueryPublic_HashtagOverlapScansPastFirstBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	author := seedUser(t, db, "author")

	// 65 non-matching videos outrank the single match by like count, so the
	// match sits past the first candidate batch for a 20-item page.
	for i := 0; i < 65; i++ {
		seedVideo(t, db, author, "decoy", func(v *domain.Video) {
			v.Hashtags = domain.StringArray{"circus"}
			v.LikeCount = int64(1000 + i)
		})
	}
	seedVideo(t, db, author, "real-match", func(v *domain.Video) {
		v.Hashtags = domain.StringArray{"cooking"}
		v.LikeCount = 1
	})

	videos, err := repo.QueryPublic(VideoFilter{
		HashtagsAny: []string{"cooking"},
		Sort:        SortLikesDesc,
		Limit:       20,
	})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "real-match", videos[0].Title)
}

func TestQueryPublic_HashtagOverlapRespectsLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	author := seedUser(t, db, "author")

	for i := 0; i < 5; i++ {
		seedVideo(t, db, author, "tagged", func(v *domain.Video) {
			v.Hashtags = domain.StringArray{"art"}
		})
	}

	videos, err := repo.QueryPublic(VideoFilter{
		HashtagsAny: []string{"art"},
		Limit:       3,
	})
	require.NoError(t, err)
	assert.Len(t, videos, 3)
}

func TestPublicHashtagsByAuthors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedVideo(t, db, alice, "one", func(v *domain.Video) {
		v.Hashtags = domain.StringArray{"cooking", "pasta"}
	})
	seedVideo(t, db, alice, "two") // no tags, skipped
	seedVideo(t, db, alice, "hidden", func(v *domain.Video) {
		v.Hashtags = domain.StringArray{"secret"}
		v.Visibility = domain.VisibilityPrivate
	})
	seedVideo(t, db, bob, "other", func(v *domain.Video) {
		v.Hashtags = domain.StringArray{"dance"}
	})

	sets, err := repo.PublicHashtagsByAuthors([]uuid.UUID{alice.ID})
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, domain.StringArray{"cooking", "pasta"}, sets[0])

	sets, err = repo.PublicHashtagsByAuthors(nil)
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestIncrementViewCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	author := seedUser(t, db, "author")
	video := seedVideo(t, db, author, "watched")

	require.NoError(t, repo.IncrementViewCount(video.ID))
	require.NoError(t, repo.IncrementViewCount(video.ID))

	got, err := repo.FindByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)

	assert.ErrorIs(t, repo.IncrementViewCount(uuid.New()), domain.ErrNotFound)
}

func TestFindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)

	owner := seedUser(t, db, "owner")
	intruder := seedUser(t, db, "intruder")
	video := seedVideo(t, db, owner, "mine")

	// Someone else's id cannot delete the video.
	assert.ErrorIs(t, repo.SoftDelete(video.ID, intruder.ID), domain.ErrNotFound)

	require.NoError(t, repo.SoftDelete(video.ID, owner.ID))

	_, err := repo.FindByID(video.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	videos, err := repo.QueryPublic(VideoFilter{})
	require.NoError(t, err)
	assert.Empty(t, videos)

	// Deleting again reports not found.
	assert.ErrorIs(t, repo.SoftDelete(video.ID, owner.ID), domain.ErrNotFound)
}

func TestSearchPublic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	author := seedUser(t, db, "author")

	seedVideo(t, db, author, "Perfect Pasta Recipe", func(v *domain.Video) { v.ViewCount = 10 })
	seedVideo(t, db, author, "Pasta Secrets", func(v *domain.Video) { v.ViewCount = 99 })
	seedVideo(t, db, author, "Dance Tutorial")
	seedVideo(t, db, author, "Hidden Pasta", func(v *domain.Video) {
		v.Visibility = domain.VisibilityPrivate
	})

	videos, err := repo.SearchPublic("Pasta", 10)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "Pasta Secrets", videos[0].Title)
}
