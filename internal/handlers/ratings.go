package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinetrack/cinetrack/internal/models"
	"github.com/cinetrack/cinetrack/internal/services"
	"github.com/cinetrack/cinetrack/pkg/errors"
	"github.com/cinetrack/cinetrack/pkg/response"
)

// RatingHandler manages per-user content scores.
type RatingHandler struct {
	svc *services.RatingService
}

func NewRatingHandler(svc *services.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

type createRatingRequest struct {
	ContentID string `json:"content_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=10"`
}

type updateRatingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=10"`
}

// GET /api/v1/ratings
func (h *RatingHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	ratings, err := h.svc.List(requestContext(c), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, ratings)
}

// POST /api/v1/ratings
func (h *RatingHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createRatingRequest
	if !bindAndValidate(c, &req) {
		return
	}

	rating, err := h.svc.Create(requestContext(c), &models.Rating{
		UserID:    user.ID,
		ContentID: req.ContentID,
		Score:     req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rating)
}

// GET /api/v1/ratings/:rating_id
func (h *RatingHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	rating, err := h.svc.Get(requestContext(c), user.ID, c.Param("rating_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rating)
}

// PUT /api/v1/ratings/:rating_id
func (h *RatingHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updateRatingRequest
	if !bindAndValidate(c, &req) {
		return
	}

	rating, err := h.svc.Update(requestContext(c), user.ID, c.Param("rating_id"), req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rating)
}

// DELETE /api/v1/ratings/:rating_id
func (h *RatingHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.svc.Delete(requestContext(c), user.ID, c.Param("rating_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Rating deleted")
}
