package models

import "time"

// WatchlistItem tracks per-user progress through a piece of content.
type WatchlistItem struct {
	BaseModel

	UserID    string `gorm:"type:uuid;not null;index:idx_watchlist_user_content,unique" json:"user_id"`
	ContentID string `gorm:"type:uuid;not null;index:idx_watchlist_user_content,unique" json:"content_id"`

	WatchedEpisodes int  `gorm:"default:0" json:"watched_episodes"`
	IsCompleted     bool `gorm:"default:false" json:"is_completed"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

// BucketListItem marks content a user intends to watch someday.
type BucketListItem struct {
	BaseModel

	UserID    string `gorm:"type:uuid;not null;index:idx_bucketlist_user_content,unique" json:"user_id"`
	ContentID string `gorm:"type:uuid;not null;index:idx_bucketlist_user_content,unique" json:"content_id"`

	IsWatched bool       `gorm:"default:false" json:"is_watched"`
	WatchedAt *time.Time `json:"watched_at"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

// Recommendation is content a user endorses, optionally visible to others.
type Recommendation struct {
	BaseModel

	UserID    string `gorm:"type:uuid;not null;index:idx_recommendation_user_content,unique" json:"user_id"`
	ContentID string `gorm:"type:uuid;not null;index:idx_recommendation_user_content,unique" json:"content_id"`

	IsPublic bool   `json:"is_public"`
	Note     string `json:"note"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}
