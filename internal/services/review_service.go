package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

// ReviewService manages free-text content reviews.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService wires a review service.
func NewReviewService(db *gorm.DB) (*ReviewService, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &ReviewService{db: db}, nil
}

// List returns the user's reviews with content preloaded.
func (s *ReviewService) List(ctx context.Context, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Content").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "list reviews")
	}
	return reviews, nil
}

// Create stores a review after verifying the content exists.
func (s *ReviewService) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	var contentCount int64
	if err := s.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ?", review.ContentID).Count(&contentCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "check content")
	}
	if contentCount == 0 {
		return nil, apperrors.NewNotFound("Content not found")
	}

	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, apperrors.Wrap(err, "create review")
	}
	return review, nil
}

// Get loads one of the user's reviews.
func (s *ReviewService) Get(ctx context.Context, userID, reviewID string) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).
		Preload("Content").
		Where("id = ? AND user_id = ?", reviewID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("Review not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load review")
	}
	return &review, nil
}

// ReviewUpdate carries the mutable review fields.
type ReviewUpdate struct {
	Description string
	IsPrivate   bool
}

// Update edits one of the user's reviews.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID string, input ReviewUpdate) (*models.Review, error) {
	review, err := s.Get(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Description = input.Description
	review.IsPrivate = input.IsPrivate
	if err := s.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, apperrors.Wrap(err, "update review")
	}
	return review, nil
}

// Delete removes one of the user's reviews.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reviewID, userID).
		Delete(&models.Review{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete review")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("Review not found")
	}
	return nil
}
