package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinetrack/cinetrack/internal/models"
	"github.com/cinetrack/cinetrack/internal/services"
	"github.com/cinetrack/cinetrack/pkg/errors"
	"github.com/cinetrack/cinetrack/pkg/response"
)

// CustomListHandler manages user-curated lists and their items.
type CustomListHandler struct {
	svc *services.CustomListService
}

func NewCustomListHandler(svc *services.CustomListService) *CustomListHandler {
	return &CustomListHandler{svc: svc}
}

type createListRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type updateListRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type addListItemRequest struct {
	ContentID string `json:"content_id" validate:"required"`
	Note      string `json:"note"`
}

// GET /api/v1/lists
func (h *CustomListHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	lists, err := h.svc.ListForUser(requestContext(c), user.ID, parseBoolQuery(c, "is_public"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, lists)
}

// GET /api/v1/lists/public
func (h *CustomListHandler) Public(c *gin.Context) {
	lists, err := h.svc.ListPublic(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, lists)
}

// POST /api/v1/lists
func (h *CustomListHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createListRequest
	if !bindAndValidate(c, &req) {
		return
	}

	list, err := h.svc.Create(requestContext(c), &models.CustomList{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, list)
}

// GET /api/v1/lists/:list_id
func (h *CustomListHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	list, err := h.svc.Get(requestContext(c), user.ID, c.Param("list_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// PUT /api/v1/lists/:list_id
func (h *CustomListHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updateListRequest
	if !bindAndValidate(c, &req) {
		return
	}

	list, err := h.svc.Update(requestContext(c), user.ID, c.Param("list_id"), services.CustomListUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// DELETE /api/v1/lists/:list_id
func (h *CustomListHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.svc.Delete(requestContext(c), user.ID, c.Param("list_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "List deleted")
}

// POST /api/v1/lists/:list_id/items
func (h *CustomListHandler) AddItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req addListItemRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.svc.AddItem(requestContext(c), user.ID, c.Param("list_id"), &models.CustomListItem{
		ContentID: req.ContentID,
		Note:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// DELETE /api/v1/lists/:list_id/items/:item_id
func (h *CustomListHandler) RemoveItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.svc.RemoveItem(requestContext(c), user.ID, c.Param("list_id"), c.Param("item_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Item removed from list")
}
