package models

import "time"

// ContentType classifies tracked content.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
	ContentTypeAnime  ContentType = "anime"
)

// Content is the locally persisted record for a show or movie a user tracks.
// Rich metadata lives upstream; this row carries the fields list views need
// plus the TVMaze identifier used for cache invalidation and detail fetches.
type Content struct {
	BaseModel

	Title       string      `gorm:"not null" json:"title"`
	ContentType ContentType `gorm:"not null;index" json:"content_type"`
	TVMazeID    int         `gorm:"column:tvmaze_id;uniqueIndex;not null" json:"tvmaze_id"`

	Rating        *float64   `json:"rating"`
	TotalEpisodes *int       `json:"total_episodes"`
	ReleaseDate   *time.Time `json:"release_date"`
	PosterURL     string     `json:"poster_url"`
	Description   string     `json:"description"`
	Genres        string     `json:"genres"` // comma-separated
	Language      string     `gorm:"index" json:"language"`
	RuntimeMins   *int       `json:"runtime_minutes"`
}
