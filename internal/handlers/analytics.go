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

// AnalyticsHandler serves the watch history log, derived statistics and the
// stored analytics snapshots.
type AnalyticsHandler struct {
	history   *services.HistoryService
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(history *services.HistoryService, analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{history: history, analytics: analytics}
}

type addHistoryRequest struct {
	ContentID     string     `json:"content_id" validate:"required"`
	WatchedAt     *time.Time `json:"watched_at"`
	DurationMins  int        `json:"duration_minutes" validate:"required,min=1"`
	Platform      string     `json:"platform"`
	EpisodeNumber *int       `json:"episode_number"`
	SeasonNumber  *int       `json:"season_number"`
}

// POST /api/v1/analytics/history
func (h *AnalyticsHandler) AddHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req addHistoryRequest
	if !bindAndValidate(c, &req) {
		return
	}

	entry := &models.WatchHistoryEntry{
		UserID:        user.ID,
		ContentID:     req.ContentID,
		DurationMins:  req.DurationMins,
		Platform:      req.Platform,
		EpisodeNumber: req.EpisodeNumber,
		SeasonNumber:  req.SeasonNumber,
	}
	if req.WatchedAt != nil {
		entry.WatchedAt = *req.WatchedAt
	}

	created, err := h.history.AddEntry(requestContext(c), entry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// GET /api/v1/analytics/history
func (h *AnalyticsHandler) ListHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	filter := services.HistoryFilter{ContentType: c.Query("content_type")}
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, errors.NewBadRequest("start_date must be YYYY-MM-DD"))
			return
		}
		filter.StartDate = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, errors.NewBadRequest("end_date must be YYYY-MM-DD"))
			return
		}
		filter.EndDate = &parsed
	}

	entries, err := h.history.ListEntries(requestContext(c), user.ID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// GET /api/v1/analytics/stats/weekly
func (h *AnalyticsHandler) WeeklyStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	stats, err := h.history.WeeklyStats(requestContext(c), user.ID, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GET /api/v1/analytics/stats/monthly
func (h *AnalyticsHandler) MonthlyStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	stats, err := h.history.MonthlyStats(requestContext(c), user.ID, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GET /api/v1/analytics/stats/yearly
func (h *AnalyticsHandler) YearlyStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	stats, err := h.history.YearlyStats(requestContext(c), user.ID, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GET /api/v1/analytics/stats/heatmap
func (h *AnalyticsHandler) GenreHeatmap(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	heatmap, err := h.history.GenreHeatmap(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, heatmap)
}

type analyticsRequest struct {
	TotalWatchTime      int     `json:"total_watch_time" validate:"min=0"`
	TotalContentWatched int     `json:"total_content_watched" validate:"min=0"`
	AverageRating       float64 `json:"average_rating" validate:"min=0,max=10"`
}

// GET /api/v1/analytics
func (h *AnalyticsHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	records, err := h.analytics.List(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}

// POST /api/v1/analytics
func (h *AnalyticsHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req analyticsRequest
	if !bindAndValidate(c, &req) {
		return
	}

	record, err := h.analytics.Create(requestContext(c), &models.Analytics{
		UserID:              user.ID,
		TotalWatchTime:      req.TotalWatchTime,
		TotalContentWatched: req.TotalContentWatched,
		AverageRating:       req.AverageRating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, record)
}

// GET /api/v1/analytics/:analytics_id
func (h *AnalyticsHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	record, err := h.analytics.Get(requestContext(c), user.ID, c.Param("analytics_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// PUT /api/v1/analytics/:analytics_id
func (h *AnalyticsHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req analyticsRequest
	if !bindAndValidate(c, &req) {
		return
	}

	record, err := h.analytics.Update(requestContext(c), user.ID, c.Param("analytics_id"), services.AnalyticsUpdate{
		TotalWatchTime:      req.TotalWatchTime,
		TotalContentWatched: req.TotalContentWatched,
		AverageRating:       req.AverageRating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// DELETE /api/v1/analytics/:analytics_id
func (h *AnalyticsHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.analytics.Delete(requestContext(c), user.ID, c.Param("analytics_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Analytics record deleted")
}
