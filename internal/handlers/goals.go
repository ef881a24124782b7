package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinetrack/cinetrack/internal/models"
	"github.com/cinetrack/cinetrack/internal/services"
	"github.com/cinetrack/cinetrack/pkg/errors"
	"github.com/cinetrack/cinetrack/pkg/response"
)

// GoalHandler manages watch goals and the achievement endpoints.
type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

type goalRequest struct {
	Name        string    `json:"name" validate:"required,max=120"`
	TargetCount int       `json:"target_count" validate:"required,min=1"`
	TargetType  string    `json:"target_type" validate:"required,oneof=movies series hours"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	IsCompleted bool      `json:"is_completed"`
}

// GET /api/v1/goals
func (h *GoalHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	goals, err := h.svc.ListGoals(requestContext(c), user.ID, parseBoolQuery(c, "is_completed"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, goals)
}

// POST /api/v1/goals
func (h *GoalHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req goalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if !req.EndDate.After(req.StartDate) {
		response.Error(c, errors.NewBadRequest("end_date must be after start_date"))
		return
	}

	goal, err := h.svc.CreateGoal(requestContext(c), &models.WatchGoal{
		UserID:      user.ID,
		Name:        req.Name,
		TargetCount: req.TargetCount,
		TargetType:  req.TargetType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, goal)
}

// GET /api/v1/goals/:goal_id
func (h *GoalHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	goal, err := h.svc.GetGoal(requestContext(c), user.ID, c.Param("goal_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, goal)
}

// PUT /api/v1/goals/:goal_id
func (h *GoalHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req goalRequest
	if !bindAndValidate(c, &req) {
		return
	}

	goal, err := h.svc.UpdateGoal(requestContext(c), user.ID, c.Param("goal_id"), services.GoalUpdate{
		Name:        req.Name,
		TargetCount: req.TargetCount,
		TargetType:  req.TargetType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, goal)
}

// DELETE /api/v1/goals/:goal_id
func (h *GoalHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.svc.DeleteGoal(requestContext(c), user.ID, c.Param("goal_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Goal deleted")
}

// GET /api/v1/goals/achievements
func (h *GoalHandler) Achievements(c *gin.Context) {
	achievements, err := h.svc.ListAchievements(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, achievements)
}

// GET /api/v1/goals/achievements/user
func (h *GoalHandler) UserAchievements(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	earned, err := h.svc.ListUserAchievements(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, earned)
}

// POST /api/v1/goals/achievements/check
func (h *GoalHandler) CheckAchievements(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	awarded, err := h.svc.CheckAchievements(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, awarded)
}
