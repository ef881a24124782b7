package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. All tracked entities (watchlist entries, ratings,
// reviews, lists, goals, history) hang off a user via foreign keys.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	FullName string `json:"full_name"`

	// Set explicitly on create; a gorm default tag would overwrite a
	// deliberate false with the column default.
	IsActive    bool `json:"is_active"`
	IsSuperuser bool `json:"is_superuser"`

	WatchlistItems  []WatchlistItem     `gorm:"foreignKey:UserID" json:"-"`
	Ratings         []Rating            `gorm:"foreignKey:UserID" json:"-"`
	Reviews         []Review            `gorm:"foreignKey:UserID" json:"-"`
	BucketListItems []BucketListItem    `gorm:"foreignKey:UserID" json:"-"`
	Recommendations []Recommendation    `gorm:"foreignKey:UserID" json:"-"`
	CustomLists     []CustomList        `gorm:"foreignKey:UserID" json:"-"`
	WatchGoals      []WatchGoal         `gorm:"foreignKey:UserID" json:"-"`
	Achievements    []UserAchievement   `gorm:"foreignKey:UserID" json:"-"`
	WatchHistory    []WatchHistoryEntry `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
