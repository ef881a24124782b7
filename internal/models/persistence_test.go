package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinetrack/cinetrack/internal/database/testutil"
	"github.com/cinetrack/cinetrack/internal/models"
)

// Boolean flags must round-trip a deliberate false through Create; a column
// default would silently flip them back on.
func TestCreatePersistsFalseFlags(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	user := models.User{
		Username: "dormant",
		Email:    "dormant@example.com",
		Password: "hashed",
		IsActive: false,
	}
	require.NoError(t, db.Create(&user).Error)

	var storedUser models.User
	require.NoError(t, db.First(&storedUser, "id = ?", user.ID).Error)
	require.False(t, storedUser.IsActive)

	content := models.Content{
		Title:       "Patriot",
		ContentType: models.ContentTypeSeries,
		TVMazeID:    20857,
	}
	require.NoError(t, db.Create(&content).Error)

	rec := models.Recommendation{
		UserID:    user.ID,
		ContentID: content.ID,
		IsPublic:  false,
		Note:      "keeping this one to myself",
	}
	require.NoError(t, db.Create(&rec).Error)

	var storedRec models.Recommendation
	require.NoError(t, db.First(&storedRec, "id = ?", rec.ID).Error)
	require.False(t, storedRec.IsPublic)
}
