package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

func TestWatchlistAddListRemove(t *testing.T) {
	db := openDB(t)
	svc, err := NewListService[models.WatchlistItem](db, "watchlist")
	require.NoError(t, err)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	content := createTestContent(t, db, "Some Show", models.ContentTypeSeries, 42)

	item := models.WatchlistItem{UserID: user.ID, ContentID: content.ID, WatchedEpisodes: 3}
	added, err := svc.Add(ctx, user.ID, content.ID, &item)
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].WatchedEpisodes)
	require.NotNil(t, items[0].Content)
	require.Equal(t, "Some Show", items[0].Content.Title)

	require.NoError(t, svc.Remove(ctx, user.ID, added.ID))

	items, err = svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestListAddMissingContent(t *testing.T) {
	db := openDB(t)
	svc, err := NewListService[models.WatchlistItem](db, "watchlist")
	require.NoError(t, err)

	user := createTestUser(t, db, "alice@example.com")
	item := models.WatchlistItem{UserID: user.ID, ContentID: "missing"}

	_, err = svc.Add(context.Background(), user.ID, "missing", &item)
	require.Error(t, err)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)
	require.Equal(t, "Content not found", apperrors.FromError(err).Message)
}

func TestListAddDuplicate(t *testing.T) {
	db := openDB(t)
	svc, err := NewListService[models.BucketListItem](db, "bucket list")
	require.NoError(t, err)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	content := createTestContent(t, db, "Some Show", models.ContentTypeSeries, 42)

	first := models.BucketListItem{UserID: user.ID, ContentID: content.ID}
	_, err = svc.Add(ctx, user.ID, content.ID, &first)
	require.NoError(t, err)

	second := models.BucketListItem{UserID: user.ID, ContentID: content.ID}
	_, err = svc.Add(ctx, user.ID, content.ID, &second)
	require.Error(t, err)

	appErr := apperrors.FromError(err)
	require.Equal(t, 400, appErr.StatusCode)
	require.Equal(t, "Content already in bucket list", appErr.Message)
}

func TestListUpdateScopedToOwner(t *testing.T) {
	db := openDB(t)
	svc, err := NewListService[models.WatchlistItem](db, "watchlist")
	require.NoError(t, err)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	content := createTestContent(t, db, "Some Show", models.ContentTypeSeries, 42)

	item := models.WatchlistItem{UserID: alice.ID, ContentID: content.ID}
	_, err = svc.Add(ctx, alice.ID, content.ID, &item)
	require.NoError(t, err)

	// Bob cannot see or touch Alice's item.
	_, err = svc.Get(ctx, bob.ID, item.ID)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)

	err = svc.Remove(ctx, bob.ID, item.ID)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)

	updated, err := svc.Update(ctx, alice.ID, item.ID, func(w *models.WatchlistItem) {
		w.WatchedEpisodes = 10
		w.IsCompleted = true
	})
	require.NoError(t, err)
	require.True(t, updated.IsCompleted)
	require.Equal(t, 10, updated.WatchedEpisodes)
}

func TestSameContentAllowedAcrossListKinds(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	watchlist, err := NewListService[models.WatchlistItem](db, "watchlist")
	require.NoError(t, err)
	bucketlist, err := NewListService[models.BucketListItem](db, "bucket list")
	require.NoError(t, err)
	recommendations, err := NewListService[models.Recommendation](db, "recommendations")
	require.NoError(t, err)

	user := createTestUser(t, db, "alice@example.com")
	content := createTestContent(t, db, "Some Show", models.ContentTypeSeries, 42)

	_, err = watchlist.Add(ctx, user.ID, content.ID, &models.WatchlistItem{UserID: user.ID, ContentID: content.ID})
	require.NoError(t, err)
	_, err = bucketlist.Add(ctx, user.ID, content.ID, &models.BucketListItem{UserID: user.ID, ContentID: content.ID})
	require.NoError(t, err)
	_, err = recommendations.Add(ctx, user.ID, content.ID, &models.Recommendation{UserID: user.ID, ContentID: content.ID, Note: "great"})
	require.NoError(t, err)
}
