package repository

import (
	"testing"

	"github.com/saintpdi/tamara-backend/internal/domain"
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

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		DisplayName:  username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedVideo(t *testing.T, db *gorm.DB, author *domain.User, title string, mutate ...func(*domain.Video)) *domain.Video {
	video := &domain.Video{
		UserID:     author.ID,
		Title:      title,
		VideoURL:   "https://cdn.example.com/" + title + ".mp4",
		Visibility: domain.VisibilityPublic,
		Hashtags:   domain.StringArray{},
	}
	for _, m := range mutate {
		m(video)
	}
	require.NoError(t, db.Create(video).Error)
	return video
}
