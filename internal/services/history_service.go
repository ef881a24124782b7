package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

// HistoryService records viewing sessions and derives statistics from
// them.
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService wires a history service.
func NewHistoryService(db *gorm.DB) (*HistoryService, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &HistoryService{db: db}, nil
}

// AddEntry logs a viewing session after verifying the content exists.
func (s *HistoryService) AddEntry(ctx context.Context, entry *models.WatchHistoryEntry) (*models.WatchHistoryEntry, error) {
	var contentCount int64
	if err := s.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ?", entry.ContentID).Count(&contentCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "check content")
	}
	if contentCount == 0 {
		return nil, apperrors.NewNotFound("Content not found")
	}

	if entry.WatchedAt.IsZero() {
		entry.WatchedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(err, "add history entry")
	}
	return entry, nil
}

// HistoryFilter narrows a history listing.
type HistoryFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	ContentType string
}

// ListEntries returns the user's history, newest first.
func (s *HistoryService) ListEntries(ctx context.Context, userID string, filter HistoryFilter) ([]models.WatchHistoryEntry, error) {
	query := s.db.WithContext(ctx).
		Model(&models.WatchHistoryEntry{}).
		Preload("Content").
		Where("watch_history_entries.user_id = ?", userID)

	if filter.StartDate != nil {
		query = query.Where("watched_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("watched_at <= ?", *filter.EndDate)
	}
	if filter.ContentType != "" {
		query = query.
			Joins("JOIN contents ON contents.id = watch_history_entries.content_id").
			Where("contents.content_type = ?", filter.ContentType)
	}

	var entries []models.WatchHistoryEntry
	if err := query.Order("watched_at DESC").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(err, "list history")
	}
	return entries, nil
}

// PeriodStats summarises viewing over a date range.
type PeriodStats struct {
	TotalMinutes      int64          `json:"total_minutes"`
	TotalMovies       int            `json:"total_movies"`
	TotalSeries       int            `json:"total_series"`
	TotalAnime        int            `json:"total_anime"`
	GenreDistribution map[string]int `json:"genre_distribution"`
}

// TopTitle is one highly rated watched title.
type TopTitle struct {
	Title     string    `json:"title"`
	Rating    *float64  `json:"rating"`
	WatchedAt time.Time `json:"watched_at"`
}

// YearlyStats extends PeriodStats with the year's best rated movies.
type YearlyStats struct {
	PeriodStats
	TopMovies []TopTitle `json:"top_movies"`
}

// GenreStats aggregates per-genre viewing for the heatmap endpoint.
type GenreStats struct {
	Count        int   `json:"count"`
	TotalMinutes int64 `json:"total_minutes"`
	Movies       int   `json:"movies"`
	Series       int   `json:"series"`
	Anime        int   `json:"anime"`
}

func (s *HistoryService) entriesSince(ctx context.Context, userID string, since time.Time) ([]models.WatchHistoryEntry, error) {
	var entries []models.WatchHistoryEntry
	err := s.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ? AND watched_at >= ?", userID, since).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "load history")
	}
	return entries, nil
}

func buildPeriodStats(entries []models.WatchHistoryEntry) PeriodStats {
	stats := PeriodStats{GenreDistribution: make(map[string]int)}
	for _, entry := range entries {
		stats.TotalMinutes += int64(entry.DurationMins)
		if entry.Content == nil {
			continue
		}
		switch entry.Content.ContentType {
		case models.ContentTypeMovie:
			stats.TotalMovies++
		case models.ContentTypeSeries:
			stats.TotalSeries++
		case models.ContentTypeAnime:
			stats.TotalAnime++
		}
		for _, genre := range splitGenres(entry.Content.Genres) {
			stats.GenreDistribution[genre]++
		}
	}
	return stats
}

func splitGenres(genres string) []string {
	if genres == "" {
		return nil
	}
	parts := strings.Split(genres, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// WeeklyStats summarises viewing since the start of the current week
// (Monday).
func (s *HistoryService) WeeklyStats(ctx context.Context, userID string, now time.Time) (*PeriodStats, error) {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := now.AddDate(0, 0, -(weekday - 1))
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())

	entries, err := s.entriesSince(ctx, userID, start)
	if err != nil {
		return nil, err
	}
	stats := buildPeriodStats(entries)
	return &stats, nil
}

// MonthlyStats summarises viewing since the first of the current month.
func (s *HistoryService) MonthlyStats(ctx context.Context, userID string, now time.Time) (*PeriodStats, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	entries, err := s.entriesSince(ctx, userID, start)
	if err != nil {
		return nil, err
	}
	stats := buildPeriodStats(entries)
	return &stats, nil
}

// YearlyStats summarises viewing this year plus the five best rated
// movies watched.
func (s *HistoryService) YearlyStats(ctx context.Context, userID string, now time.Time) (*YearlyStats, error) {
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	entries, err := s.entriesSince(ctx, userID, start)
	if err != nil {
		return nil, err
	}

	stats := &YearlyStats{PeriodStats: buildPeriodStats(entries)}

	movies := make([]models.WatchHistoryEntry, 0)
	for _, entry := range entries {
		if entry.Content != nil && entry.Content.ContentType == models.ContentTypeMovie {
			movies = append(movies, entry)
		}
	}
	sort.SliceStable(movies, func(i, j int) bool {
		ri, rj := movies[i].Content.Rating, movies[j].Content.Rating
		switch {
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri > *rj
		}
	})
	if len(movies) > 5 {
		movies = movies[:5]
	}

	stats.TopMovies = make([]TopTitle, 0, len(movies))
	for _, movie := range movies {
		stats.TopMovies = append(stats.TopMovies, TopTitle{
			Title:     movie.Content.Title,
			Rating:    movie.Content.Rating,
			WatchedAt: movie.WatchedAt,
		})
	}

	return stats, nil
}

// GenreHeatmap aggregates the user's entire history per genre.
func (s *HistoryService) GenreHeatmap(ctx context.Context, userID string) (map[string]*GenreStats, error) {
	var entries []models.WatchHistoryEntry
	err := s.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ?", userID).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "load history")
	}

	heatmap := make(map[string]*GenreStats)
	for _, entry := range entries {
		if entry.Content == nil {
			continue
		}
		for _, genre := range splitGenres(entry.Content.Genres) {
			cell, ok := heatmap[genre]
			if !ok {
				cell = &GenreStats{}
				heatmap[genre] = cell
			}
			cell.Count++
			cell.TotalMinutes += int64(entry.DurationMins)
			switch entry.Content.ContentType {
			case models.ContentTypeMovie:
				cell.Movies++
			case models.ContentTypeSeries:
				cell.Series++
			case models.ContentTypeAnime:
				cell.Anime++
			}
		}
	}
	return heatmap, nil
}
