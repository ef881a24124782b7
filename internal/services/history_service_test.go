package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

func TestAddEntryRequiresContent(t *testing.T) {
	db := openDB(t)
	svc, err := NewHistoryService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "alice@example.com")
	entry := models.WatchHistoryEntry{UserID: user.ID, ContentID: "missing", DurationMins: 60}

	_, err = svc.AddEntry(context.Background(), &entry)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)
}

func TestListEntriesFilters(t *testing.T) {
	db := openDB(t)
	svc, err := NewHistoryService(db)
	require.NoError(t, err)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	movie := createTestContent(t, db, "A Movie", models.ContentTypeMovie, 1)
	series := createTestContent(t, db, "A Series", models.ContentTypeSeries, 2)

	old := time.Now().AddDate(0, -2, 0)
	_, err = svc.AddEntry(ctx, &models.WatchHistoryEntry{UserID: user.ID, ContentID: movie.ID, WatchedAt: old, DurationMins: 120})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, &models.WatchHistoryEntry{UserID: user.ID, ContentID: series.ID, WatchedAt: time.Now(), DurationMins: 45})
	require.NoError(t, err)

	all, err := svc.ListEntries(ctx, user.ID, HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "A Series", all[0].Content.Title) // newest first

	recent := time.Now().AddDate(0, -1, 0)
	filtered, err := svc.ListEntries(ctx, user.ID, HistoryFilter{StartDate: &recent})
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	byType, err := svc.ListEntries(ctx, user.ID, HistoryFilter{ContentType: "movie"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "A Movie", byType[0].Content.Title)
}

func TestPeriodStats(t *testing.T) {
	db := openDB(t)
	svc, err := NewHistoryService(db)
	require.NoError(t, err)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	movie := createTestContent(t, db, "A Movie", models.ContentTypeMovie, 1)
	series := createTestContent(t, db, "A Series", models.ContentTypeSeries, 2)

	now := time.Now()
	_, err = svc.AddEntry(ctx, &models.WatchHistoryEntry{UserID: user.ID, ContentID: movie.ID, WatchedAt: now, DurationMins: 120})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, &models.WatchHistoryEntry{UserID: user.ID, ContentID: series.ID, WatchedAt: now, DurationMins: 45})
	require.NoError(t, err)
	// Last year's viewing stays out of this year's stats.
	_, err = svc.AddEntry(ctx, &models.WatchHistoryEntry{UserID: user.ID, ContentID: movie.ID, WatchedAt: now.AddDate(-1, 0, 0), DurationMins: 90})
	require.NoError(t, err)

	yearly, err := svc.YearlyStats(ctx, user.ID, now)
	require.NoError(t, err)
	require.Equal(t, int64(165), yearly.TotalMinutes)
	require.Equal(t, 1, yearly.TotalMovies)
	require.Equal(t, 1, yearly.TotalSeries)
	require.Equal(t, 2, yearly.GenreDistribution["Drama"])
	require.Len(t, yearly.TopMovies, 1)
	require.Equal(t, "A Movie", yearly.TopMovies[0].Title)

	monthly, err := svc.MonthlyStats(ctx, user.ID, now)
	require.NoError(t, err)
	require.Equal(t, int64(165), monthly.TotalMinutes)
}

func TestGenreHeatmap(t *testing.T) {
	db := openDB(t)
	svc, err := NewHistoryService(db)
	require.NoError(t, err)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	movie := createTestContent(t, db, "A Movie", models.ContentTypeMovie, 1)

	_, err = svc.AddEntry(ctx, &models.WatchHistoryEntry{UserID: user.ID, ContentID: movie.ID, WatchedAt: time.Now(), DurationMins: 100})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, &models.WatchHistoryEntry{UserID: user.ID, ContentID: movie.ID, WatchedAt: time.Now(), DurationMins: 50})
	require.NoError(t, err)

	heatmap, err := svc.GenreHeatmap(ctx, user.ID)
	require.NoError(t, err)

	drama := heatmap["Drama"]
	require.NotNil(t, drama)
	require.Equal(t, 2, drama.Count)
	require.Equal(t, int64(150), drama.TotalMinutes)
	require.Equal(t, 2, drama.Movies)
	require.Zero(t, drama.Series)
}
