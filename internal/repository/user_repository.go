package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("username = ? AND deleted_at IS NULL", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ? AND deleted_at IS NULL", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Search matches username or display name, case-insensitive.
func (r *UserRepository) Search(q string, limit int) ([]domain.User, error) {
	var users []domain.User
	pattern := "%" + q + "%"
	err := r.db.Model(&domain.User{}).
		Where("deleted_at IS NULL").
		Where("username LIKE ? OR display_name LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ListVerified returns verified accounts for the discovery surface.
func (r *UserRepository) ListVerified(limit int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.Model(&domain.User{}).
		Where("is_verified = ? AND deleted_at IS NULL", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
