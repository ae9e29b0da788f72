package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"gorm.io/gorm"
)

type PodcastRepository struct {
	db *gorm.DB
}

func NewPodcastRepository(db *gorm.DB) *PodcastRepository {
	return &PodcastRepository{db: db}
}

func (r *PodcastRepository) Create(podcast *domain.Podcast) error {
	return r.db.Create(podcast).Error
}

func (r *PodcastRepository) FindByID(id uuid.UUID) (*domain.Podcast, error) {
	var podcast domain.Podcast
	err := r.db.Preload("User").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&podcast).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &podcast, nil
}

// List returns episodes newest-first, optionally narrowed to one creator.
func (r *PodcastRepository) List(creatorID *uuid.UUID, limit int) ([]domain.Podcast, error) {
	query := r.db.Model(&domain.Podcast{}).
		Where("deleted_at IS NULL")
	if creatorID != nil {
		query = query.Where("user_id = ?", *creatorID)
	}

	var podcasts []domain.Podcast
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&podcasts).Error
	return podcasts, err
}

// Search finds episodes whose title matches the query.
func (r *PodcastRepository) Search(q string, limit int) ([]domain.Podcast, error) {
	var podcasts []domain.Podcast
	err := r.db.Model(&domain.Podcast{}).
		Where("deleted_at IS NULL").
		Where("title LIKE ?", "%"+q+"%").
		Preload("User").
		Order("play_count DESC").
		Limit(limit).
		Find(&podcasts).Error
	return podcasts, err
}

// IncrementPlayCount bumps the play counter in a single statement.
func (r *PodcastRepository) IncrementPlayCount(id uuid.UUID) error {
	res := r.db.Model(&domain.Podcast{}).
		Where("id = ?", id).
		Update("play_count", gorm.Expr("play_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
