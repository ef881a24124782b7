package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

// RatingService manages per-user content scores.
type RatingService struct {
	db *gorm.DB
}

// NewRatingService wires a rating service.
func NewRatingService(db *gorm.DB) (*RatingService, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &RatingService{db: db}, nil
}

// List returns the user's ratings with content preloaded.
func (s *RatingService) List(ctx context.Context, userID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "list ratings")
	}
	return ratings, nil
}

// Create scores a piece of content. A user rates each title at most once.
func (s *RatingService) Create(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	if rating.Score < 1 || rating.Score > 10 {
		return nil, apperrors.NewBadRequest("Rating must be between 1 and 10")
	}

	var contentCount int64
	if err := s.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ?", rating.ContentID).Count(&contentCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "check content")
	}
	if contentCount == 0 {
		return nil, apperrors.NewNotFound("Content not found")
	}

	var duplicates int64
	if err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Where("user_id = ? AND content_id = ?", rating.UserID, rating.ContentID).
		Count(&duplicates).Error; err != nil {
		return nil, apperrors.Wrap(err, "check duplicate")
	}
	if duplicates > 0 {
		return nil, apperrors.NewBadRequest("Content already rated")
	}

	if err := s.db.WithContext(ctx).Create(rating).Error; err != nil {
		return nil, apperrors.Wrap(err, "create rating")
	}
	return rating, nil
}

// Get loads one of the user's ratings.
func (s *RatingService) Get(ctx context.Context, userID, ratingID string) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).
		Preload("Content").
		Where("id = ? AND user_id = ?", ratingID, userID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("Rating not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load rating")
	}
	return &rating, nil
}

// Update changes the score of an existing rating.
func (s *RatingService) Update(ctx context.Context, userID, ratingID string, score int) (*models.Rating, error) {
	if score < 1 || score > 10 {
		return nil, apperrors.NewBadRequest("Rating must be between 1 and 10")
	}

	rating, err := s.Get(ctx, userID, ratingID)
	if err != nil {
		return nil, err
	}

	rating.Score = score
	if err := s.db.WithContext(ctx).Save(rating).Error; err != nil {
		return nil, apperrors.Wrap(err, "update rating")
	}
	return rating, nil
}

// Delete removes one of the user's ratings.
func (s *RatingService) Delete(ctx context.Context, userID, ratingID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", ratingID, userID).
		Delete(&models.Rating{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete rating")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("Rating not found")
	}
	return nil
}
