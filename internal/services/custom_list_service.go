package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

// CustomListService manages named lists and their items. Lists are private
// by default; public lists are readable by anyone but writable only by
// their owner.
type CustomListService struct {
	db *gorm.DB
}

// NewCustomListService wires a custom list service.
func NewCustomListService(db *gorm.DB) (*CustomListService, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &CustomListService{db: db}, nil
}

// ListForUser returns the user's lists, optionally filtered by visibility.
func (s *CustomListService) ListForUser(ctx context.Context, userID string, isPublic *bool) ([]models.CustomList, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if isPublic != nil {
		query = query.Where("is_public = ?", *isPublic)
	}

	var lists []models.CustomList
	if err := query.Order("created_at DESC").Find(&lists).Error; err != nil {
		return nil, apperrors.Wrap(err, "list custom lists")
	}
	return lists, nil
}

// ListPublic returns every public list regardless of owner.
func (s *CustomListService) ListPublic(ctx context.Context) ([]models.CustomList, error) {
	var lists []models.CustomList
	if err := s.db.WithContext(ctx).Where("is_public = ?", true).
		Order("created_at DESC").Find(&lists).Error; err != nil {
		return nil, apperrors.Wrap(err, "list public lists")
	}
	return lists, nil
}

// Create inserts a new list owned by userID.
func (s *CustomListService) Create(ctx context.Context, list *models.CustomList) (*models.CustomList, error) {
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, apperrors.Wrap(err, "create custom list")
	}
	return list, nil
}

// Get returns one list if the caller owns it or it is public.
func (s *CustomListService) Get(ctx context.Context, userID, listID string) (*models.CustomList, error) {
	var list models.CustomList
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Content").
		Where("id = ? AND (user_id = ? OR is_public = ?)", listID, userID, true).
		First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("List not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load custom list")
	}
	return &list, nil
}

// getOwned loads a list only when the caller owns it.
func (s *CustomListService) getOwned(ctx context.Context, userID, listID string) (*models.CustomList, error) {
	var list models.CustomList
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", listID, userID).
		First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("List not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load custom list")
	}
	return &list, nil
}

// CustomListUpdate carries the mutable list fields.
type CustomListUpdate struct {
	Name        string
	Description string
	IsPublic    bool
}

// Update renames or re-describes an owned list.
func (s *CustomListService) Update(ctx context.Context, userID, listID string, input CustomListUpdate) (*models.CustomList, error) {
	list, err := s.getOwned(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	list.Name = input.Name
	list.Description = input.Description
	list.IsPublic = input.IsPublic
	if err := s.db.WithContext(ctx).Save(list).Error; err != nil {
		return nil, apperrors.Wrap(err, "update custom list")
	}
	return list, nil
}

// Delete removes an owned list and its items.
func (s *CustomListService) Delete(ctx context.Context, userID, listID string) error {
	list, err := s.getOwned(ctx, userID, listID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.CustomListItem{}).Error; err != nil {
			return apperrors.Wrap(err, "delete list items")
		}
		if err := tx.Delete(list).Error; err != nil {
			return apperrors.Wrap(err, "delete custom list")
		}
		return nil
	})
}

// AddItem appends content to an owned list, rejecting duplicates.
func (s *CustomListService) AddItem(ctx context.Context, userID, listID string, item *models.CustomListItem) (*models.CustomListItem, error) {
	if _, err := s.getOwned(ctx, userID, listID); err != nil {
		return nil, err
	}

	var contentCount int64
	if err := s.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ?", item.ContentID).Count(&contentCount).Error; err != nil {
		return nil, apperrors.Wrap(err, "check content")
	}
	if contentCount == 0 {
		return nil, apperrors.NewNotFound("Content not found")
	}

	var duplicates int64
	if err := s.db.WithContext(ctx).Model(&models.CustomListItem{}).
		Where("list_id = ? AND content_id = ?", listID, item.ContentID).
		Count(&duplicates).Error; err != nil {
		return nil, apperrors.Wrap(err, "check duplicate")
	}
	if duplicates > 0 {
		return nil, apperrors.NewBadRequest("Content already in list")
	}

	item.ListID = listID
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, apperrors.Wrap(err, "add list item")
	}
	return item, nil
}

// RemoveItem removes one item from an owned list.
func (s *CustomListService) RemoveItem(ctx context.Context, userID, listID, itemID string) error {
	if _, err := s.getOwned(ctx, userID, listID); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND list_id = ?", itemID, listID).
		Delete(&models.CustomListItem{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "remove list item")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("Item not found")
	}
	return nil
}
