package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinetrack/cinetrack/internal/models"
	"github.com/cinetrack/cinetrack/internal/services"
	"github.com/cinetrack/cinetrack/pkg/errors"
	"github.com/cinetrack/cinetrack/pkg/response"
)

// ReviewHandler manages free-text content reviews.
type ReviewHandler struct {
	svc *services.ReviewService
}

func NewReviewHandler(svc *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type createReviewRequest struct {
	ContentID   string `json:"content_id" validate:"required"`
	Description string `json:"description" validate:"required"`
	IsPrivate   bool   `json:"is_private"`
}

type updateReviewRequest struct {
	Description string `json:"description" validate:"required"`
	IsPrivate   bool   `json:"is_private"`
}

// GET /api/v1/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	reviews, err := h.svc.List(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviews)
}

// POST /api/v1/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createReviewRequest
	if !bindAndValidate(c, &req) {
		return
	}

	review, err := h.svc.Create(requestContext(c), &models.Review{
		UserID:      user.ID,
		ContentID:   req.ContentID,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, review)
}

// GET /api/v1/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	review, err := h.svc.Get(requestContext(c), user.ID, c.Param("review_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// PUT /api/v1/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updateReviewRequest
	if !bindAndValidate(c, &req) {
		return
	}

	review, err := h.svc.Update(requestContext(c), user.ID, c.Param("review_id"), services.ReviewUpdate{
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// DELETE /api/v1/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.svc.Delete(requestContext(c), user.ID, c.Param("review_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Review deleted")
}
