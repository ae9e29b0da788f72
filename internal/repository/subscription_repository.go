package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) IsSubscribed(subscriberID, podcastID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Subscription{}).
		Where("subscriber_id = ? AND podcast_id = ? AND status = ?",
			subscriberID, podcastID, domain.SubscriptionActive).
		Count(&count).Error
	return count > 0, err
}

// SubscribedSet is the batch form of IsSubscribed for episode listings.
func (r *SubscriptionRepository) SubscribedSet(subscriberID uuid.UUID, podcastIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(podcastIDs))
	if len(podcastIDs) == 0 {
		return set, nil
	}

	var ids []uuid.UUID
	err := r.db.Model(&domain.Subscription{}).
		Where("subscriber_id = ? AND podcast_id IN ? AND status = ?",
			subscriberID, podcastIDs, domain.SubscriptionActive).
		Pluck("podcast_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Subscribe creates the subscription, or reactivates a canceled one. The
// podcast's subscriber counter moves only when the row actually changed
// state, inside the same transaction.
func (r *SubscriptionRepository) Subscribe(subscriberID, podcastID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Subscription
		err := tx.Where("subscriber_id = ? AND podcast_id = ?", subscriberID, podcastID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sub := domain.Subscription{
				SubscriberID: subscriberID,
				PodcastID:    podcastID,
				Status:       domain.SubscriptionActive,
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.Status == domain.SubscriptionActive:
			return nil // already subscribed
		default:
			err := tx.Model(&existing).
				Update("status", domain.SubscriptionActive).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&domain.Podcast{}).
			Where("id = ?", podcastID).
			Update("subscriber_count", gorm.Expr("subscriber_count + 1")).Error
	})
}

// Unsubscribe cancels an active subscription and decrements the counter.
// Canceling a missing or already-canceled subscription is a no-op.
func (r *SubscriptionRepository) Unsubscribe(subscriberID, podcastID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Subscription{}).
			Where("subscriber_id = ? AND podcast_id = ? AND status = ?",
				subscriberID, podcastID, domain.SubscriptionActive).
			Update("status", domain.SubscriptionCanceled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&domain.Podcast{}).
			Where("id = ? AND subscriber_count > 0", podcastID).
			Update("subscriber_count", gorm.Expr("subscriber_count - 1")).Error
	})
}

func (r *SubscriptionRepository) CreateTip(tip *domain.Tip) error {
	return r.db.Create(tip).Error
}
