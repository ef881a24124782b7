package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

// RecommendationFilter narrows the public recommendation feed.
type RecommendationFilter struct {
	ContentType string
	Genre       string
	Language    string
	SortBy      string // created_at (default) or rating
}

// RecommendationService serves the cross-user public recommendation feed.
// Per-user recommendation CRUD lives in the generic list service.
type RecommendationService struct {
	db *gorm.DB
}

func NewRecommendationService(db *gorm.DB) (*RecommendationService, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &RecommendationService{db: db}, nil
}

// ListPublic returns publicly shared recommendations, optionally filtered by
// the recommended content's type, genre or language.
func (s *RecommendationService) ListPublic(ctx context.Context, filter RecommendationFilter) ([]models.Recommendation, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Recommendation{}).
		Where("recommendations.is_public = ?", true).
		Preload("Content")

	needsJoin := filter.ContentType != "" || filter.Genre != "" || filter.Language != "" || filter.SortBy == "rating"
	if needsJoin {
		query = query.Joins("JOIN contents ON contents.id = recommendations.content_id")
	}

	if filter.ContentType != "" {
		query = query.Where("contents.content_type = ?", filter.ContentType)
	}
	if filter.Genre != "" {
		query = query.Where("LOWER(contents.genres) LIKE ?", "%"+strings.ToLower(filter.Genre)+"%")
	}
	if filter.Language != "" {
		query = query.Where("contents.language = ?", filter.Language)
	}

	if filter.SortBy == "rating" {
		query = query.Order("contents.rating DESC")
	} else {
		query = query.Order("recommendations.created_at DESC")
	}

	var results []models.Recommendation
	if err := query.Find(&results).Error; err != nil {
		return nil, apperrors.Wrap(err, "list public recommendations")
	}
	return results, nil
}
