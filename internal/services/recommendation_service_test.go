package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinetrack/cinetrack/internal/models"
)

func TestListPublicRecommendations(t *testing.T) {
	db := openDB(t)
	svc, err := NewRecommendationService(db)
	require.NoError(t, err)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	movie := createTestContent(t, db, "A Movie", models.ContentTypeMovie, 1)
	series := createTestContent(t, db, "A Series", models.ContentTypeSeries, 2)

	require.NoError(t, db.Create(&models.Recommendation{
		UserID: alice.ID, ContentID: movie.ID, IsPublic: true, Note: "great",
	}).Error)
	require.NoError(t, db.Create(&models.Recommendation{
		UserID: bob.ID, ContentID: series.ID, IsPublic: true,
	}).Error)
	require.NoError(t, db.Create(&models.Recommendation{
		UserID: alice.ID, ContentID: series.ID, IsPublic: false, Note: "secret",
	}).Error)

	// Private rows never appear in the feed
	all, err := svc.ListPublic(ctx, RecommendationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, rec := range all {
		require.True(t, rec.IsPublic)
		require.NotNil(t, rec.Content)
	}

	// Content type filter
	movies, err := svc.ListPublic(ctx, RecommendationFilter{ContentType: "movie"})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, movie.ID, movies[0].ContentID)

	// Genre filter is a substring match
	drama, err := svc.ListPublic(ctx, RecommendationFilter{Genre: "drama"})
	require.NoError(t, err)
	require.Len(t, drama, 2)

	none, err := svc.ListPublic(ctx, RecommendationFilter{Genre: "western"})
	require.NoError(t, err)
	require.Empty(t, none)
}
