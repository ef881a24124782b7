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

// WatchlistHandler exposes the per-user watchlist with episode progress.
type WatchlistHandler struct {
	svc *services.ListService[models.WatchlistItem]
}

func NewWatchlistHandler(svc *services.ListService[models.WatchlistItem]) *WatchlistHandler {
	return &WatchlistHandler{svc: svc}
}

type addWatchlistRequest struct {
	ContentID       string `json:"content_id" validate:"required"`
	WatchedEpisodes int    `json:"watched_episodes" validate:"min=0"`
	IsCompleted     bool   `json:"is_completed"`
}

type updateWatchlistRequest struct {
	WatchedEpisodes *int  `json:"watched_episodes" validate:"omitempty,min=0"`
	IsCompleted     *bool `json:"is_completed"`
}

// GET /api/v1/watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	items, err := h.svc.List(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// POST /api/v1/watchlist
func (h *WatchlistHandler) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req addWatchlistRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item := &models.WatchlistItem{
		UserID:          user.ID,
		ContentID:       req.ContentID,
		WatchedEpisodes: req.WatchedEpisodes,
		IsCompleted:     req.IsCompleted,
	}

	created, err := h.svc.Add(requestContext(c), user.ID, req.ContentID, item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// PUT /api/v1/watchlist/:item_id
func (h *WatchlistHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updateWatchlistRequest
	if !bindAndValidate(c, &req) {
		return
	}

	updated, err := h.svc.Update(requestContext(c), user.ID, c.Param("item_id"), func(item *models.WatchlistItem) {
		if req.WatchedEpisodes != nil {
			item.WatchedEpisodes = *req.WatchedEpisodes
		}
		if req.IsCompleted != nil {
			item.IsCompleted = *req.IsCompleted
		}
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// DELETE /api/v1/watchlist/:item_id
func (h *WatchlistHandler) Remove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.svc.Remove(requestContext(c), user.ID, c.Param("item_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Item removed from watchlist")
}

// BucketListHandler exposes the someday-watch list.
type BucketListHandler struct {
	svc *services.ListService[models.BucketListItem]
}

func NewBucketListHandler(svc *services.ListService[models.BucketListItem]) *BucketListHandler {
	return &BucketListHandler{svc: svc}
}

type addBucketListRequest struct {
	ContentID string `json:"content_id" validate:"required"`
}

type updateBucketListRequest struct {
	IsWatched *bool `json:"is_watched"`
}

// GET /api/v1/bucketlist
func (h *BucketListHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	items, err := h.svc.List(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// POST /api/v1/bucketlist
func (h *BucketListHandler) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req addBucketListRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item := &models.BucketListItem{
		UserID:    user.ID,
		ContentID: req.ContentID,
	}

	created, err := h.svc.Add(requestContext(c), user.ID, req.ContentID, item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// PUT /api/v1/bucketlist/:item_id
func (h *BucketListHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updateBucketListRequest
	if !bindAndValidate(c, &req) {
		return
	}

	updated, err := h.svc.Update(requestContext(c), user.ID, c.Param("item_id"), func(item *models.BucketListItem) {
		if req.IsWatched != nil {
			item.IsWatched = *req.IsWatched
			if *req.IsWatched && item.WatchedAt == nil {
				now := time.Now().UTC()
				item.WatchedAt = &now
			}
			if !*req.IsWatched {
				item.WatchedAt = nil
			}
		}
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// DELETE /api/v1/bucketlist/:item_id
func (h *BucketListHandler) Remove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.svc.Remove(requestContext(c), user.ID, c.Param("item_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Item removed from bucket list")
}

// RecommendationHandler exposes content a user endorses to others.
type RecommendationHandler struct {
	svc    *services.ListService[models.Recommendation]
	public *services.RecommendationService
}

func NewRecommendationHandler(svc *services.ListService[models.Recommendation], public *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc, public: public}
}

// GET /api/v1/recommendations/public
func (h *RecommendationHandler) Public(c *gin.Context) {
	items, err := h.public.ListPublic(requestContext(c), services.RecommendationFilter{
		ContentType: c.Query("content_type"),
		Genre:       c.Query("genre"),
		Language:    c.Query("language"),
		SortBy:      c.DefaultQuery("sort_by", "created_at"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

type addRecommendationRequest struct {
	ContentID string `json:"content_id" validate:"required"`
	Note      string `json:"note"`
	IsPublic  *bool  `json:"is_public"`
}

type updateRecommendationRequest struct {
	Note     *string `json:"note"`
	IsPublic *bool   `json:"is_public"`
}

// GET /api/v1/recommendations
func (h *RecommendationHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	items, err := h.svc.List(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// POST /api/v1/recommendations
func (h *RecommendationHandler) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req addRecommendationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item := &models.Recommendation{
		UserID:    user.ID,
		ContentID: req.ContentID,
		Note:      req.Note,
		IsPublic:  true,
	}
	if req.IsPublic != nil {
		item.IsPublic = *req.IsPublic
	}

	created, err := h.svc.Add(requestContext(c), user.ID, req.ContentID, item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// PUT /api/v1/recommendations/:item_id
func (h *RecommendationHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updateRecommendationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	updated, err := h.svc.Update(requestContext(c), user.ID, c.Param("item_id"), func(item *models.Recommendation) {
		if req.Note != nil {
			item.Note = *req.Note
		}
		if req.IsPublic != nil {
			item.IsPublic = *req.IsPublic
		}
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// DELETE /api/v1/recommendations/:item_id
func (h *RecommendationHandler) Remove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.svc.Remove(requestContext(c), user.ID, c.Param("item_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Recommendation removed")
}
