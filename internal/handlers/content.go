package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinetrack/cinetrack/internal/content"
	"github.com/cinetrack/cinetrack/internal/models"
	"github.com/cinetrack/cinetrack/internal/services"
	"github.com/cinetrack/cinetrack/pkg/errors"
	"github.com/cinetrack/cinetrack/pkg/response"
)

// ContentHandler exposes the TV metadata passthrough plus the locally
// persisted content catalogue.
type ContentHandler struct {
	content *content.Service
	catalog *services.CatalogService
}

func NewContentHandler(contentSvc *content.Service, catalog *services.CatalogService) *ContentHandler {
	return &ContentHandler{content: contentSvc, catalog: catalog}
}

// GET /api/v1/content/search
func (h *ContentHandler) Search(c *gin.Context) {
	query := c.Query("query")
	page := parseIntQuery(c, "page", 1)

	results, err := h.content.SearchContent(requestContext(c), query, c.Query("type"), c.Query("language"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, results)
}

// GET /api/v1/content/shows/:tvmaze_id
func (h *ContentHandler) ShowByID(c *gin.Context) {
	detail, err := h.content.GetContentByID(requestContext(c), c.Param("tvmaze_id"), "tv")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// GET /api/v1/content/shows/:tvmaze_id/credits
func (h *ContentHandler) Credits(c *gin.Context) {
	credits, err := h.content.GetCastAndCrew(requestContext(c), c.Param("tvmaze_id"), "tv")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, credits)
}

// GET /api/v1/content/shows/:tvmaze_id/similar
func (h *ContentHandler) Similar(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	similar, err := h.content.GetSimilarContent(requestContext(c), c.Param("tvmaze_id"), "tv", page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, similar)
}

// GET /api/v1/content/genres
func (h *ContentHandler) Genres(c *gin.Context) {
	genres, err := h.content.GetGenres(requestContext(c), "tv")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, genres)
}

// GET /api/v1/content/trending
func (h *ContentHandler) Trending(c *gin.Context) {
	window := c.DefaultQuery("window", "day")
	trending, err := h.content.GetTrendingContent(requestContext(c), "tv", window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, trending)
}

// DELETE /api/v1/content/cache
// DELETE /api/v1/content/cache/:tvmaze_id
func (h *ContentHandler) ClearCache(c *gin.Context) {
	if err := h.content.ClearContentCache(requestContext(c), c.Param("tvmaze_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Cache cleared successfully")
}

// GET /api/v1/content/shows/:tvmaze_id/details
func (h *ContentHandler) ShowDetails(c *gin.Context) {
	showID, err := strconv.Atoi(c.Param("tvmaze_id"))
	if err != nil {
		response.Error(c, errors.NewBadRequest("show id must be numeric"))
		return
	}

	detail, err := h.content.GetShowDetails(requestContext(c), showID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// GET /api/v1/content/schedule
func (h *ContentHandler) Schedule(c *gin.Context) {
	items, err := h.content.GetSchedule(requestContext(c), c.Query("country"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GET /api/v1/content/schedule/web
func (h *ContentHandler) WebSchedule(c *gin.Context) {
	items, err := h.content.GetWebSchedule(requestContext(c), c.Query("country"), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GET /api/v1/content/people/search
func (h *ContentHandler) SearchPeople(c *gin.Context) {
	people, err := h.content.SearchPeople(requestContext(c), c.Query("query"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, people)
}

// GET /api/v1/content/people/:person_id
func (h *ContentHandler) PersonDetails(c *gin.Context) {
	personID, err := strconv.Atoi(c.Param("person_id"))
	if err != nil {
		response.Error(c, errors.NewBadRequest("person id must be numeric"))
		return
	}

	person, err := h.content.GetPersonDetails(requestContext(c), personID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, person)
}

// GET /api/v1/content/episodes/:episode_id
func (h *ContentHandler) EpisodeDetails(c *gin.Context) {
	episodeID, err := strconv.Atoi(c.Param("episode_id"))
	if err != nil {
		response.Error(c, errors.NewBadRequest("episode id must be numeric"))
		return
	}

	episode, err := h.content.GetEpisodeDetails(requestContext(c), episodeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, episode)
}

// GET /api/v1/content/lookup
func (h *ContentHandler) Lookup(c *gin.Context) {
	externalID := strings.TrimSpace(c.Query("id"))
	source := strings.TrimSpace(c.Query("source"))
	if externalID == "" || source == "" {
		response.Error(c, errors.NewBadRequest("id and source are required"))
		return
	}

	result, err := h.content.GetShowByExternalID(requestContext(c), externalID, source)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GET /api/v1/content/updates/shows
func (h *ContentHandler) ShowUpdates(c *gin.Context) {
	updates, err := h.content.GetShowUpdates(requestContext(c), c.Query("since"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, updates)
}

// GET /api/v1/content/updates/people
func (h *ContentHandler) PersonUpdates(c *gin.Context) {
	updates, err := h.content.GetPersonUpdates(requestContext(c), c.Query("since"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, updates)
}

// GET /api/v1/content/index/shows
func (h *ContentHandler) ShowIndex(c *gin.Context) {
	shows, err := h.content.GetShowIndex(requestContext(c), parseIntQuery(c, "page", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, shows)
}

// GET /api/v1/content/index/people
func (h *ContentHandler) PeopleIndex(c *gin.Context) {
	people, err := h.content.GetPeopleIndex(requestContext(c), parseIntQuery(c, "page", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, people)
}

type createContentRequest struct {
	Title         string   `json:"title" validate:"required"`
	ContentType   string   `json:"content_type" validate:"required,oneof=movie series anime"`
	TVMazeID      int      `json:"tvmaze_id" validate:"required"`
	Rating        *float64 `json:"rating"`
	TotalEpisodes *int     `json:"total_episodes"`
	ReleaseDate   *string  `json:"release_date"`
	PosterURL     string   `json:"poster_url"`
	Description   string   `json:"description"`
	Genres        string   `json:"genres"`
	Language      string   `json:"language"`
	RuntimeMins   *int     `json:"runtime_minutes"`
}

// GET /api/v1/content/db/:content_id
func (h *ContentHandler) GetStored(c *gin.Context) {
	item, err := h.catalog.Get(requestContext(c), c.Param("content_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// POST /api/v1/content/db
func (h *ContentHandler) CreateStored(c *gin.Context) {
	var req createContentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item := &models.Content{
		Title:         req.Title,
		ContentType:   models.ContentType(req.ContentType),
		TVMazeID:      req.TVMazeID,
		Rating:        req.Rating,
		TotalEpisodes: req.TotalEpisodes,
		PosterURL:     req.PosterURL,
		Description:   req.Description,
		Genres:        req.Genres,
		Language:      req.Language,
		RuntimeMins:   req.RuntimeMins,
	}
	if req.ReleaseDate != nil {
		released, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			response.Error(c, errors.NewBadRequest("release_date must be YYYY-MM-DD"))
			return
		}
		item.ReleaseDate = &released
	}

	created, err := h.catalog.Create(requestContext(c), item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}
