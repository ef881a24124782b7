package models

import (
	"time"

	"gorm.io/datatypes"
)

// WatchHistoryEntry logs a single viewing session.
type WatchHistoryEntry struct {
	BaseModel

	UserID    string `gorm:"type:uuid;not null;index" json:"user_id"`
	ContentID string `gorm:"type:uuid;not null;index" json:"content_id"`

	WatchedAt     time.Time `gorm:"not null;index" json:"watched_at"`
	DurationMins  int       `gorm:"not null" json:"duration_minutes"`
	Platform      string    `json:"platform"` // netflix, crunchyroll, ...
	EpisodeNumber *int      `json:"episode_number"`
	SeasonNumber  *int      `json:"season_number"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

// Analytics aggregates a user's viewing statistics. Favourite lists are stored
// as JSON documents so they stay queryable across the supported databases.
type Analytics struct {
	BaseModel

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	TotalWatchTime      int            `gorm:"default:0" json:"total_watch_time"` // minutes
	TotalContentWatched int            `gorm:"default:0" json:"total_content_watched"`
	FavoriteGenres      datatypes.JSON `json:"favorite_genres"`
	FavoriteActors      datatypes.JSON `json:"favorite_actors"`
	FavoriteDirectors   datatypes.JSON `json:"favorite_directors"`
	AverageRating       float64        `gorm:"default:0" json:"average_rating"`
}
