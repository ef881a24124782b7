package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

// UserContentItem constrains the row types the generic list service can
// manage. All of them are user-owned join rows against Content.
type UserContentItem interface {
	models.WatchlistItem | models.BucketListItem | models.Recommendation
}

// ListService provides the shared behaviour of the watchlist, bucket list
// and recommendation modules: list a user's rows, add with existence and
// duplicate checks, update and remove owned rows.
type ListService[T UserContentItem] struct {
	db   *gorm.DB
	kind string
}

// NewListService wires a list service. kind appears in user-facing
// messages, e.g. "watchlist" or "bucket list".
func NewListService[T UserContentItem](db *gorm.DB, kind string) (*ListService[T], error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	if kind == "" {
		return nil, errors.New("list kind is required")
	}
	return &ListService[T]{db: db, kind: kind}, nil
}

// List returns all of a user's items with content preloaded.
func (s *ListService[T]) List(ctx context.Context, userID string) ([]T, error) {
	var items []T
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Content").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("list %s items", s.kind))
	}
	return items, nil
}

// Add inserts item after verifying the content exists and the user does
// not already track it. The caller fills the item's own fields; user and
// content IDs are taken separately so the checks and the row agree.
func (s *ListService[T]) Add(ctx context.Context, userID, contentID string, item *T) (*T, error) {
	var contentCount int64
	if err := s.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ?", contentID).Count(&contentCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "check content")
	}
	if contentCount == 0 {
		return nil, apperrors.NewNotFound("Content not found")
	}

	var duplicates int64
	if err := s.db.WithContext(ctx).Model(new(T)).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&duplicates).Error; err != nil {
		return nil, apperrors.Wrap(err, "check duplicate")
	}
	if duplicates > 0 {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("Content already in %s", s.kind))
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("add to %s", s.kind))
	}
	return item, nil
}

// Get loads one of the user's items by row ID.
func (s *ListService[T]) Get(ctx context.Context, userID, itemID string) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).
		Preload("Content").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.notFound()
	}
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("load %s item", s.kind))
	}
	return &item, nil
}

// Update applies mutate to one of the user's items and persists it.
func (s *ListService[T]) Update(ctx context.Context, userID, itemID string, mutate func(*T)) (*T, error) {
	item, err := s.Get(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	mutate(item)
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("update %s item", s.kind))
	}
	return item, nil
}

// Remove deletes one of the user's items.
func (s *ListService[T]) Remove(ctx context.Context, userID, itemID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(new(T))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, fmt.Sprintf("remove %s item", s.kind))
	}
	if result.RowsAffected == 0 {
		return s.notFound()
	}
	return nil
}

func (s *ListService[T]) notFound() *apperrors.AppError {
	return apperrors.NewNotFound(fmt.Sprintf("Item not found in %s", s.kind))
}
