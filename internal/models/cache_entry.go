package models

import (
	"time"
)

// CacheEntry represents a cached upstream document stored in the database fallback.
type CacheEntry struct {
	Key       string     `gorm:"primaryKey;size:256"`
	Value     []byte     `gorm:"type:blob"`
	ExpiresAt *time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
