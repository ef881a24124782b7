package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

// CatalogService manages the locally persisted content records that the
// user-owned lists reference.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService wires a catalog service.
func NewCatalogService(db *gorm.DB) (*CatalogService, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &CatalogService{db: db}, nil
}

// Get loads one content row by primary key.
func (s *CatalogService) Get(ctx context.Context, contentID string) (*models.Content, error) {
	var content models.Content
	err := s.db.WithContext(ctx).First(&content, "id = ?", contentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("Content not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load content")
	}
	return &content, nil
}

// Create persists a content record. TVMaze IDs are unique so the same
// show is never stored twice.
func (s *CatalogService) Create(ctx context.Context, content *models.Content) (*models.Content, error) {
	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Content{}).
		Where("tvmaze_id = ?", content.TVMazeID).Count(&existing).Error; err != nil {
		return nil, apperrors.Wrap(err, "check existing content")
	}
	if existing > 0 {
		return nil, apperrors.NewBadRequest("Content with this TVMaze ID already exists")
	}

	if err := s.db.WithContext(ctx).Create(content).Error; err != nil {
		return nil, apperrors.Wrap(err, "create content")
	}
	return content, nil
}
