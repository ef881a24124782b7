package models

import "time"

// WatchGoal is a time-boxed viewing target, e.g. "50 movies this year".
type WatchGoal struct {
	BaseModel

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	Name        string    `gorm:"not null" json:"name"`
	TargetCount int       `gorm:"not null" json:"target_count"`
	TargetType  string    `gorm:"not null" json:"target_type"` // movies, series, hours
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null;index" json:"end_date"`
	IsCompleted bool      `gorm:"default:false" json:"is_completed"`
}

// Achievement is a globally defined badge users can earn.
type Achievement struct {
	BaseModel

	Name            string `gorm:"uniqueIndex;not null" json:"name"`
	Description     string `gorm:"not null" json:"description"`
	IconURL         string `json:"icon_url"`
	RequiredCount   int    `gorm:"not null" json:"required_count"`
	AchievementType string `gorm:"not null" json:"achievement_type"` // movies, series, hours
}

// UserAchievement records when a user earned an achievement.
type UserAchievement struct {
	BaseModel

	UserID        string    `gorm:"type:uuid;not null;index:idx_user_achievement,unique" json:"user_id"`
	AchievementID string    `gorm:"type:uuid;not null;index:idx_user_achievement,unique" json:"achievement_id"`
	EarnedAt      time.Time `gorm:"not null" json:"earned_at"`

	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}
