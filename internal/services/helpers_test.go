package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/database/testutil"
	"github.com/cinetrack/cinetrack/internal/models"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Username: email,
		Email:    email,
		Password: "hashed-password",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestContent(t *testing.T, db *gorm.DB, title string, contentType models.ContentType, tvmazeID int) *models.Content {
	t.Helper()

	content := models.Content{
		Title:       title,
		ContentType: contentType,
		TVMazeID:    tvmazeID,
		Genres:      "Drama, Action",
	}
	require.NoError(t, db.Create(&content).Error)
	return &content
}
