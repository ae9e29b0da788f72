package repository

import (
	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Follow inserts the edge if absent. Re-inserting an existing edge is a
// no-op, not an error.
func (r *FollowRepository) Follow(followerID, followingID uuid.UUID) error {
	follow := domain.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

// Unfollow deletes the edge. Deleting a missing edge is a no-op.
func (r *FollowRepository) Unfollow(followerID, followingID uuid.UUID) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.Follow{}).Error
}

func (r *FollowRepository) IsFollowing(followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// ListFollowing returns the ids of every user the given user follows.
func (r *FollowRepository) ListFollowing(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&domain.Follow{}).
		Where("follower_id = ?", userID).
		Order("created_at ASC").
		Pluck("following_id", &ids).Error
	return ids, err
}

// FollowingSet is the batch form of IsFollowing: one query for a whole feed
// page instead of one per item.
func (r *FollowRepository) FollowingSet(viewerID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return set, nil
	}

	var ids []uuid.UUID
	err := r.db.Model(&domain.Follow{}).
		Where("follower_id = ? AND following_id IN ?", viewerID, authorIDs).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *FollowRepository) FollowerCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FollowRepository) GetFollowers(userID uuid.UUID, page, limit int) ([]domain.Follow, int64, error) {
	var follows []domain.Follow
	var total int64

	query := r.db.Model(&domain.Follow{}).Where("following_id = ?", userID)
	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Preload("Follower").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&follows).Error

	return follows, total, err
}

func (r *FollowRepository) GetFollowing(userID uuid.UUID, page, limit int) ([]domain.Follow, int64, error) {
	var follows []domain.Follow
	var total int64

	query := r.db.Model(&domain.Follow{}).Where("follower_id = ?", userID)
	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Preload("Following").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&follows).Error

	return follows, total, err
}
