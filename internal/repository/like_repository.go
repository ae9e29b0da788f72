package repository

import (
	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) IsLiked(userID, videoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Like{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).Error
	return count > 0, err
}

// LikedSet is the batch form of IsLiked: one query per feed page.
func (r *LikeRepository) LikedSet(userID uuid.UUID, videoIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(videoIDs))
	if len(videoIDs) == 0 {
		return set, nil
	}

	var ids []uuid.UUID
	err := r.db.Model(&domain.Like{}).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Like creates the edge and bumps the video's like counter in one
// transaction. The counter moves only when the edge actually changed
// (RowsAffected), so re-applying cannot drift edge and counter apart.
func (r *LikeRepository) Like(userID, videoID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		like := domain.Like{UserID: userID, VideoID: videoID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // already liked
		}
		return tx.Model(&domain.Video{}).
			Where("id = ?", videoID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// Unlike removes the edge and decrements the counter in one transaction,
// same RowsAffected guard as Like.
func (r *LikeRepository) Unlike(userID, videoID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND video_id = ?", userID, videoID).
			Delete(&domain.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // was not liked
		}
		return tx.Model(&domain.Video{}).
			Where("id = ? AND like_count > 0", videoID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
}
