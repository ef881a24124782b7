package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
)

// AutoMigrate applies the schema for every registered model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Content{},
		&models.WatchlistItem{},
		&models.BucketListItem{},
		&models.Recommendation{},
		&models.Rating{},
		&models.Review{},
		&models.CustomList{},
		&models.CustomListItem{},
		&models.WatchGoal{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.WatchHistoryEntry{},
		&models.Analytics{},
		&models.CacheEntry{},
	)
}

// SeedData inserts the built-in achievement catalogue. Existing rows are
// left untouched so operators can tune thresholds after first boot.
func SeedData(db *gorm.DB) error {
	achievements := []models.Achievement{
		{Name: "First Reel", Description: "Watch your first movie", RequiredCount: 1, AchievementType: "movies"},
		{Name: "Movie Buff", Description: "Watch 10 movies", RequiredCount: 10, AchievementType: "movies"},
		{Name: "Cinephile", Description: "Watch 50 movies", RequiredCount: 50, AchievementType: "movies"},
		{Name: "Pilot Episode", Description: "Watch your first series", RequiredCount: 1, AchievementType: "series"},
		{Name: "Binge Watcher", Description: "Watch 10 series", RequiredCount: 10, AchievementType: "series"},
		{Name: "Couch Marathon", Description: "Log 100 hours of watch time", RequiredCount: 100, AchievementType: "hours"},
		{Name: "Time Lord", Description: "Log 500 hours of watch time", RequiredCount: 500, AchievementType: "hours"},
	}

	for _, achievement := range achievements {
		if err := db.Where(models.Achievement{Name: achievement.Name}).
			FirstOrCreate(&achievement).Error; err != nil {
			return fmt.Errorf("seed achievement %q: %w", achievement.Name, err)
		}
	}

	return nil
}
