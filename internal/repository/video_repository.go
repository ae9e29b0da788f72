package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"gorm.io/gorm"
)

type VideoSort string

const (
	SortCreatedDesc VideoSort = "created_desc"
	SortLikesDesc   VideoSort = "likes_desc"
)

// overlapBatchFactor sizes each candidate batch when a hashtag-overlap
// filter applies; the scan keeps paging until the result fills, so the
// factor only tunes round trips, never correctness.
const overlapBatchFactor = 3

// VideoFilter narrows QueryPublic. All conditions are combined with AND.
type VideoFilter struct {
	AuthorIn    []uuid.UUID
	AuthorNotIn []uuid.UUID
	HashtagsAny []string
	Sort        VideoSort
	Limit       int
}

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(video *domain.Video) error {
	return r.db.Create(video).Error
}

func (r *VideoRepository) FindByID(id uuid.UUID) (*domain.Video, error) {
	var video domain.Video
	err := r.db.Preload("User").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// QueryPublic returns public videos matching the filter. Only public
// visibility is ever eligible; private and followers-only rows never leave
// this method. The hashtag-overlap condition is applied in Go, paging
// through sorted candidates until the page fills or the table is exhausted,
// which keeps the query portable across drivers without ever dropping a
// match that ranks past the first batch.
func (r *VideoRepository) QueryPublic(filter VideoFilter) ([]domain.Video, error) {
	base := func() *gorm.DB {
		query := r.db.Model(&domain.Video{}).
			Where("visibility = ? AND deleted_at IS NULL", domain.VisibilityPublic)
		if len(filter.AuthorIn) > 0 {
			query = query.Where("user_id IN ?", filter.AuthorIn)
		}
		if len(filter.AuthorNotIn) > 0 {
			query = query.Where("user_id NOT IN ?", filter.AuthorNotIn)
		}
		orderBy := "created_at DESC"
		if filter.Sort == SortLikesDesc {
			orderBy = "like_count DESC"
		}
		return query.Preload("User").Order(orderBy)
	}

	if len(filter.HashtagsAny) == 0 {
		var videos []domain.Video
		query := base()
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
		if err := query.Find(&videos).Error; err != nil {
			return nil, err
		}
		return videos, nil
	}

	return r.scanForOverlap(base, filter.HashtagsAny, filter.Limit)
}

// scanForOverlap walks the sorted candidate stream batch by batch, keeping
// videos whose hashtag set intersects tags, until limit matches are found
// or no candidates remain.
func (r *VideoRepository) scanForOverlap(base func() *gorm.DB, tags []string, limit int) ([]domain.Video, error) {
	batchSize := limit * overlapBatchFactor
	if batchSize <= 0 {
		batchSize = 100
	}

	matched := make([]domain.Video, 0, limit)
	for offset := 0; ; offset += batchSize {
		var batch []domain.Video
		err := base().Limit(batchSize).Offset(offset).Find(&batch).Error
		if err != nil {
			return nil, err
		}

		for _, v := range batch {
			if hashtagsOverlap(v.Hashtags, tags) {
				matched = append(matched, v)
				if limit > 0 && len(matched) == limit {
					return matched, nil
				}
			}
		}

		if len(batch) < batchSize {
			return matched, nil
		}
	}
}

func hashtagsOverlap(set domain.StringArray, tags []string) bool {
	for _, tag := range tags {
		if set.Contains(tag) {
			return true
		}
	}
	return false
}

// PublicHashtagsByAuthors returns the hashtag sets of all public videos
// authored by the given users, one entry per video.
func (r *VideoRepository) PublicHashtagsByAuthors(authorIDs []uuid.UUID) ([]domain.StringArray, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	var videos []domain.Video
	err := r.db.Model(&domain.Video{}).
		Select("hashtags").
		Where("user_id IN ? AND visibility = ? AND deleted_at IS NULL", authorIDs, domain.VisibilityPublic).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}

	sets := make([]domain.StringArray, 0, len(videos))
	for _, v := range videos {
		if len(v.Hashtags) > 0 {
			sets = append(sets, v.Hashtags)
		}
	}
	return sets, nil
}

// SoftDelete marks an owner's video deleted so it vanishes from every
// query. A missing video or one owned by someone else reports not found.
func (r *VideoRepository) SoftDelete(id, ownerID uuid.UUID) error {
	res := r.db.Model(&domain.Video{}).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", id, ownerID).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViewCount bumps the view counter in a single statement so
// concurrent viewers cannot lose updates.
func (r *VideoRepository) IncrementViewCount(id uuid.UUID) error {
	res := r.db.Model(&domain.Video{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementShareCount bumps the share counter, same contract as views.
func (r *VideoRepository) IncrementShareCount(id uuid.UUID) error {
	res := r.db.Model(&domain.Video{}).
		Where("id = ?", id).
		Update("share_count", gorm.Expr("share_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SearchPublic finds public videos whose title matches the query.
func (r *VideoRepository) SearchPublic(q string, limit int) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.Model(&domain.Video{}).
		Where("visibility = ? AND deleted_at IS NULL", domain.VisibilityPublic).
		Where("title LIKE ?", "%"+q+"%").
		Preload("User").
		Order("view_count DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

func (r *VideoRepository) ListByUser(userID uuid.UUID, limit int) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.Model(&domain.Video{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}
