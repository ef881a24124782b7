package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

// AnalyticsService manages the persisted per-user aggregate records.
// Derived period statistics live in HistoryService; these rows are the
// materialised long-term summaries.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService wires an analytics service.
func NewAnalyticsService(db *gorm.DB) (*AnalyticsService, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &AnalyticsService{db: db}, nil
}

// List returns the user's analytics records.
func (s *AnalyticsService) List(ctx context.Context, userID string) ([]models.Analytics, error) {
	var records []models.Analytics
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "list analytics")
	}
	return records, nil
}

// Create inserts an analytics record.
func (s *AnalyticsService) Create(ctx context.Context, record *models.Analytics) (*models.Analytics, error) {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, apperrors.Wrap(err, "create analytics")
	}
	return record, nil
}

// Get loads one of the user's analytics records.
func (s *AnalyticsService) Get(ctx context.Context, userID, recordID string) (*models.Analytics, error) {
	var record models.Analytics
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recordID, userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("Analytics not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load analytics")
	}
	return &record, nil
}

// AnalyticsUpdate carries the mutable aggregate fields.
type AnalyticsUpdate struct {
	TotalWatchTime      int
	TotalContentWatched int
	AverageRating       float64
}

// Update replaces the aggregate counters of a record.
func (s *AnalyticsService) Update(ctx context.Context, userID, recordID string, input AnalyticsUpdate) (*models.Analytics, error) {
	record, err := s.Get(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	record.TotalWatchTime = input.TotalWatchTime
	record.TotalContentWatched = input.TotalContentWatched
	record.AverageRating = input.AverageRating
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, apperrors.Wrap(err, "update analytics")
	}
	return record, nil
}

// Delete removes one of the user's analytics records.
func (s *AnalyticsService) Delete(ctx context.Context, userID, recordID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recordID, userID).
		Delete(&models.Analytics{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete analytics")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("Analytics not found")
	}
	return nil
}
