package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

// GoalService manages watch goals and the achievement system.
type GoalService struct {
	db *gorm.DB
}

// NewGoalService wires a goal service.
func NewGoalService(db *gorm.DB) (*GoalService, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &GoalService{db: db}, nil
}

// ListGoals returns the user's goals, optionally filtered by completion.
func (s *GoalService) ListGoals(ctx context.Context, userID string, isCompleted *bool) ([]models.WatchGoal, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if isCompleted != nil {
		query = query.Where("is_completed = ?", *isCompleted)
	}

	var goals []models.WatchGoal
	if err := query.Order("end_date ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(err, "list goals")
	}
	return goals, nil
}

// CreateGoal inserts a new goal for userID.
func (s *GoalService) CreateGoal(ctx context.Context, goal *models.WatchGoal) (*models.WatchGoal, error) {
	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(err, "create goal")
	}
	return goal, nil
}

// GetGoal loads one of the user's goals.
func (s *GoalService) GetGoal(ctx context.Context, userID, goalID string) (*models.WatchGoal, error) {
	var goal models.WatchGoal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("Goal not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "load goal")
	}
	return &goal, nil
}

// GoalUpdate carries the mutable goal fields.
type GoalUpdate struct {
	Name        string
	TargetCount int
	TargetType  string
	StartDate   time.Time
	EndDate     time.Time
	IsCompleted bool
}

// UpdateGoal replaces the user-editable fields of a goal.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID string, input GoalUpdate) (*models.WatchGoal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Name = input.Name
	goal.TargetCount = input.TargetCount
	goal.TargetType = input.TargetType
	goal.StartDate = input.StartDate
	goal.EndDate = input.EndDate
	goal.IsCompleted = input.IsCompleted
	if err := s.db.WithContext(ctx).Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(err, "update goal")
	}
	return goal, nil
}

// DeleteGoal removes one of the user's goals.
func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.WatchGoal{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete goal")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("Goal not found")
	}
	return nil
}

// ListAchievements returns the global achievement catalogue.
func (s *GoalService) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := s.db.WithContext(ctx).Order("required_count ASC").Find(&achievements).Error; err != nil {
		return nil, apperrors.Wrap(err, "list achievements")
	}
	return achievements, nil
}

// ListUserAchievements returns what the user has earned so far.
func (s *GoalService) ListUserAchievements(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	var earned []models.UserAchievement
	err := s.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Find(&earned).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "list user achievements")
	}
	return earned, nil
}

// CheckAchievements evaluates every unearned achievement against the
// user's watch history and awards the ones whose threshold is met. The
// newly earned achievements are returned.
func (s *GoalService) CheckAchievements(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	achievements, err := s.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}

	earned, err := s.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	earnedIDs := make(map[string]struct{}, len(earned))
	for _, ua := range earned {
		earnedIDs[ua.AchievementID] = struct{}{}
	}

	movieCount, err := s.historyCountByType(ctx, userID, models.ContentTypeMovie)
	if err != nil {
		return nil, err
	}
	seriesCount, err := s.historyCountByType(ctx, userID, models.ContentTypeSeries)
	if err != nil {
		return nil, err
	}
	totalMinutes, err := s.historyMinutes(ctx, userID)
	if err != nil {
		return nil, err
	}
	hours := totalMinutes / 60

	var awarded []models.UserAchievement
	now := time.Now()
	for _, achievement := range achievements {
		if _, ok := earnedIDs[achievement.ID]; ok {
			continue
		}

		var progress int64
		switch achievement.AchievementType {
		case "movies":
			progress = movieCount
		case "series":
			progress = seriesCount
		case "hours":
			progress = hours
		default:
			continue
		}

		if progress >= int64(achievement.RequiredCount) {
			ua := models.UserAchievement{
				UserID:        userID,
				AchievementID: achievement.ID,
				EarnedAt:      now,
			}
			if err := s.db.WithContext(ctx).Create(&ua).Error; err != nil {
				return nil, apperrors.Wrap(err, "award achievement")
			}
			ua.Achievement = &achievement
			awarded = append(awarded, ua)
		}
	}

	if awarded == nil {
		awarded = []models.UserAchievement{}
	}
	return awarded, nil
}

func (s *GoalService) historyCountByType(ctx context.Context, userID string, contentType models.ContentType) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.WatchHistoryEntry{}).
		Joins("JOIN contents ON contents.id = watch_history_entries.content_id").
		Where("watch_history_entries.user_id = ? AND contents.content_type = ?", userID, contentType).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "count watch history")
	}
	return count, nil
}

func (s *GoalService) historyMinutes(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.WatchHistoryEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(duration_mins), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "sum watch minutes")
	}
	return total, nil
}
