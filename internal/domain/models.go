package domain

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enum types
type VisibilityLevel string

const (
	VisibilityPublic        VisibilityLevel = "public"
	VisibilityPrivate       VisibilityLevel = "private"
	VisibilityFollowersOnly VisibilityLevel = "followers_only"
)

type PodcastContentType string

const (
	PodcastAudio PodcastContentType = "audio_podcast"
	PodcastVideo PodcastContentType = "video_podcast"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

type TipStatus string

const (
	TipPending   TipStatus = "pending"
	TipCompleted TipStatus = "completed"
	TipFailed    TipStatus = "failed"
)

// StringArray maps a PostgreSQL text[] column. Hashtags are stored as an
// unordered, case-sensitive set of strings.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		for _, c := range s {
			// Backslash and double quote must be escaped inside a
			// quoted array element.
			if c == '\\' || c == '"' {
				b.WriteByte('\\')
			}
			b.WriteRune(c)
		}
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String(), nil
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case []byte:
		str = string(v)
	case string:
		str = v
	default:
		*a = StringArray{}
		return nil
	}

	if str == "" || str == "{}" {
		*a = StringArray{}
		return nil
	}
	*a = parseTextArray(str[1 : len(str)-1])
	return nil
}

func parseTextArray(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	var current strings.Builder
	inQuote := false
	escaped := false
	for _, c := range s {
		if escaped {
			current.WriteRune(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				result = append(result, current.String())
				current.Reset()
			} else {
				current.WriteRune(c)
			}
		default:
			current.WriteRune(c)
		}
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// Contains reports whether the set holds tag (exact, case-sensitive match).
func (a StringArray) Contains(tag string) bool {
	for _, t := range a {
		if t == tag {
			return true
		}
	}
	return false
}

// Base model with soft delete
type BaseModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

// User
type User struct {
	BaseModel
	Username     string  `gorm:"type:varchar(30);not null;uniqueIndex" json:"username"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string  `gorm:"type:varchar(100);not null" json:"display_name"`
	Bio          *string `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL    *string `gorm:"type:text" json:"avatar_url,omitempty"`
	BannerURL    *string `gorm:"type:text" json:"banner_url,omitempty"`
	IsVerified   bool    `gorm:"not null;default:false" json:"is_verified"`
}

func (User) TableName() string { return "users" }

// Video - a short-form feed item. Engagement counters are only ever moved
// by single-statement atomic updates, never read-modify-write.
type Video struct {
	BaseModel
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string          `gorm:"type:varchar(200);not null" json:"title"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	VideoURL     string          `gorm:"type:text;not null" json:"video_url"`
	ThumbnailURL *string         `gorm:"type:text" json:"thumbnail_url,omitempty"`
	Music        *string         `gorm:"type:varchar(200)" json:"music,omitempty"`
	Hashtags     StringArray     `gorm:"type:text[]" json:"hashtags"`
	LikeCount    int64           `gorm:"not null;default:0" json:"like_count"`
	ViewCount    int64           `gorm:"not null;default:0" json:"view_count"`
	CommentCount int64           `gorm:"not null;default:0" json:"comment_count"`
	ShareCount   int64           `gorm:"not null;default:0" json:"share_count"`
	Visibility   VisibilityLevel `gorm:"type:varchar(20);not null;default:'public'" json:"visibility"`
	User         *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Video) TableName() string { return "videos" }

// Follow - directed follower -> following edge, unique per ordered pair.
// Self-edges are rejected in the service layer before any store call.
type Follow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair" json:"following_id"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	Follower    *User     `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following   *User     `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

func (Follow) TableName() string { return "follows" }

// Like - presence means the user has liked the video exactly once. The
// authoritative like count lives on Video and moves with the edge.
type Like struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	VideoID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"video_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Like) TableName() string { return "likes" }

// Podcast - an audio or video episode with optional paid access.
type Podcast struct {
	BaseModel
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Title           string             `gorm:"type:varchar(200);not null" json:"title"`
	Description     *string            `gorm:"type:text" json:"description,omitempty"`
	ContentType     PodcastContentType `gorm:"type:varchar(20);not null" json:"content_type"`
	ContentURL      string             `gorm:"type:text;not null" json:"content_url"`
	ThumbnailURL    *string            `gorm:"type:text" json:"thumbnail_url,omitempty"`
	DurationSeconds *int               `json:"duration_seconds,omitempty"`
	EpisodeNumber   *int               `json:"episode_number,omitempty"`
	SeasonNumber    *int               `json:"season_number,omitempty"`
	LikeCount       int64              `gorm:"not null;default:0" json:"like_count"`
	PlayCount       int64              `gorm:"not null;default:0" json:"play_count"`
	SubscriberCount int64              `gorm:"not null;default:0" json:"subscriber_count"`
	MonthlyFeeCents *int64             `json:"monthly_fee_cents,omitempty"`
	User            *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Podcast) TableName() string { return "podcasts" }

// Subscription - (subscriber, podcast) with lifecycle status. Payment
// settlement happens at the provider; only the session reference is kept.
type Subscription struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriberID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_subs_pair" json:"subscriber_id"`
	PodcastID         uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_subs_pair" json:"podcast_id"`
	Status            SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	ProviderSessionID *string            `gorm:"type:varchar(255)" json:"provider_session_id,omitempty"`
	CurrentPeriodEnd  *time.Time         `json:"current_period_end,omitempty"`
	CreatedAt         time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// Tip - one-off payment intent from a viewer to a creator.
type Tip struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID          uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	CreatorID         uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	AmountCents       int64     `gorm:"not null" json:"amount_cents"`
	Currency          string    `gorm:"type:varchar(3);not null;default:'usd'" json:"currency"`
	Message           *string   `gorm:"type:varchar(280)" json:"message,omitempty"`
	ProviderSessionID *string   `gorm:"type:varchar(255)" json:"provider_session_id,omitempty"`
	Status            TipStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Tip) TableName() string { return "tips" }

// ============================================================================
// HOOKS FOR UUID GENERATION
// ============================================================================

func setUUIDIfEmpty(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&b.ID)
	return nil
}

func (m *Follow) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

func (m *Subscription) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

func (m *Tip) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}
