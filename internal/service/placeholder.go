package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/saintpdi/tamara-backend/internal/domain"
)

// Demo catalog shown when the platform has no eligible videos yet, so new
// installs never open to a blank feed. IDs are fixed so clients can key on
// them across refreshes; likes and views on these items are not persisted.

func strPtr(s string) *string { return &s }

func demoUser(id, username, displayName, avatarURL string) *domain.User {
	return &domain.User{
		BaseModel:   domain.BaseModel{ID: uuid.MustParse(id)},
		Username:    username,
		DisplayName: displayName,
		AvatarURL:   strPtr(avatarURL),
		IsVerified:  true,
	}
}

func demoVideo(id string, user *domain.User, title, description, videoURL, thumbnailURL, music string, hashtags []string, likes, views, comments, shares int64) domain.Video {
	return domain.Video{
		BaseModel: domain.BaseModel{
			ID:        uuid.MustParse(id),
			CreatedAt: time.Now(),
		},
		UserID:       user.ID,
		Title:        title,
		Description:  strPtr(description),
		VideoURL:     videoURL,
		ThumbnailURL: strPtr(thumbnailURL),
		Music:        strPtr(music),
		Hashtags:     hashtags,
		LikeCount:    likes,
		ViewCount:    views,
		CommentCount: comments,
		ShareCount:   shares,
		Visibility:   domain.VisibilityPublic,
		User:         user,
	}
}

var placeholderVideos = buildPlaceholderVideos()

func buildPlaceholderVideos() []domain.Video {
	sarah := demoUser("00000000-0000-0000-0000-00000000d001", "sarah_dance", "Sarah Johnson",
		"https://images.unsplash.com/photo-1494790108755-2616b612b5bc?w=150&h=150&fit=crop&crop=face")
	mike := demoUser("00000000-0000-0000-0000-00000000d002", "foodie_mike", "Mike Chen",
		"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face")
	emma := demoUser("00000000-0000-0000-0000-00000000d003", "art_lover_emma", "Emma Wilson",
		"https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face")
	alex := demoUser("00000000-0000-0000-0000-00000000d004", "tech_guru_alex", "Alex Rodriguez",
		"https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face")
	jane := demoUser("00000000-0000-0000-0000-00000000d005", "fitness_jane", "Jane Smith",
		"https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=150&h=150&fit=crop&crop=face")

	return []domain.Video{
		demoVideo("00000000-0000-0000-0000-00000000e001", sarah,
			"Amazing Dance Tutorial",
			"Learning this new dance trend! What do you think? 💃 #dance #viral #fyp #shetalks",
			"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
			"https://images.unsplash.com/photo-1518611012118-696072aa579a?w=400&h=600&fit=crop",
			"♪ Dance Monkey - Tones and I",
			[]string{"dance", "viral", "fyp", "shetalks"},
			1240, 8500, 89, 23),
		demoVideo("00000000-0000-0000-0000-00000000e002", mike,
			"Perfect Pasta Recipe",
			"Making the perfect pasta from scratch 🍝 Recipe in comments! #cooking #foodie #shetalks",
			"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
			"https://images.unsplash.com/photo-1551183053-bf91a1d81141?w=400&h=600&fit=crop",
			"♪ Cooking Time - Original Sound",
			[]string{"cooking", "foodie", "shetalks"},
			890, 5200, 44, 17),
		demoVideo("00000000-0000-0000-0000-00000000e003", emma,
			"Speed Painting Sunset",
			"Painting this sunset in 60 seconds ⏰🎨 #speedpaint #art #sunset #creative #shetalks",
			"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
			"https://images.unsplash.com/photo-1541961017774-22349e4a1262?w=400&h=600&fit=crop",
			"♪ Peaceful Vibes - Chill Mix",
			[]string{"speedpaint", "art", "sunset", "creative", "shetalks"},
			1520, 12000, 120, 45),
		demoVideo("00000000-0000-0000-0000-00000000e004", alex,
			"iPhone Tips & Tricks",
			"Mind-blowing iPhone tricks you didn't know! 📱✨ #techtips #iphone #lifehacks #shetalks",
			"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerEscapes.mp4",
			"https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=400&h=600&fit=crop",
			"♪ Tech Vibes - Electronic Beat",
			[]string{"techtips", "iphone", "lifehacks", "shetalks"},
			2210, 18500, 187, 89),
		demoVideo("00000000-0000-0000-0000-00000000e005", jane,
			"Morning Workout Routine",
			"5-minute morning workout routine! No equipment needed 💪 #fitness #morning #workout #shetalks",
			"https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerFun.mp4",
			"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400&h=600&fit=crop",
			"♪ Pump It Up - Workout Mix",
			[]string{"fitness", "morning", "workout", "shetalks"},
			980, 6800, 62, 28),
	}
}

// PlaceholderVideos returns a copy of the demo catalog so callers cannot
// mutate the shared slice.
func PlaceholderVideos() []domain.Video {
	out := make([]domain.Video, len(placeholderVideos))
	copy(out, placeholderVideos)
	return out
}
