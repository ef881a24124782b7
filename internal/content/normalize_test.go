package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripParagraphTags(t *testing.T) {
	require.Equal(t, "A hero rises.", stripParagraphTags("<p>A hero rises.</p>"))
	require.Equal(t, "plain text", stripParagraphTags("plain text"))
	require.Equal(t, "ab", stripParagraphTags("<p>a</p><p>b</p>"))
	require.Equal(t, "", stripParagraphTags(""))
}

func TestNormalizeSummaryFlattensNestedObjects(t *testing.T) {
	rating := 8.5
	runtime := 60
	show := tvShow{
		ID:        42,
		Name:      "Some Show",
		Type:      "Scripted",
		Language:  "English",
		Genres:    []string{"Drama"},
		Status:    "Running",
		Runtime:   &runtime,
		Premiered: "2020-01-01",
		Summary:   "<p>An ordinary drama.</p>",
		Rating:    tvRating{Average: &rating},
		Image:     &tvImage{Medium: "m.jpg", Original: "o.jpg"},
	}

	got := normalizeSummary(show)
	require.Equal(t, 42, got.ID)
	require.Equal(t, "Some Show", got.Title)
	require.Equal(t, "An ordinary drama.", got.Overview)
	require.Equal(t, "m.jpg", *got.PosterURL)
	require.Equal(t, "o.jpg", *got.BackdropURL)
	require.Equal(t, "2020-01-01", *got.ReleaseDate)
	require.Equal(t, 8.5, *got.Rating)
	require.Equal(t, "scripted", got.Type)
	require.Equal(t, "english", got.Language)
}

func TestNormalizeSummaryAbsentFieldsStayNull(t *testing.T) {
	got := normalizeSummary(tvShow{ID: 1, Name: "Bare"})
	require.Nil(t, got.PosterURL)
	require.Nil(t, got.BackdropURL)
	require.Nil(t, got.ReleaseDate)
	require.Nil(t, got.Rating)
	require.Nil(t, got.Runtime)
}

func TestNormalizeDetailIncludesNetworkFields(t *testing.T) {
	show := tvShow{
		ID:         7,
		Name:       "Web Thing",
		Network:    &tvNetwork{Name: "HBO"},
		WebChannel: &tvNetwork{Name: "Max"},
		Schedule:   tvShowSchedule{Time: "21:00", Days: []string{"Monday"}},
		Externals:  map[string]any{"imdb": "tt123"},
		Updated:    1700000000,
	}

	got := normalizeDetail(show)
	require.Equal(t, "HBO", *got.Network)
	require.Equal(t, "Max", *got.WebChannel)
	require.Equal(t, "21:00", got.Schedule.Time)
	require.Equal(t, "tv", got.Type)
	require.Equal(t, int64(1700000000), got.Updated)
}

func TestNormalizeScheduleItemFallsBackToEmbeddedShow(t *testing.T) {
	entry := tvScheduleEntry{
		ID:       9,
		Airtime:  "20:00",
		Embedded: &tvEmbed{Show: tvShow{ID: 3, Name: "Streaming Show", WebChannel: &tvNetwork{Name: "Netflix"}}},
	}

	got := normalizeScheduleItem(entry, true)
	require.Equal(t, 3, got.Show.ID)
	require.Equal(t, "Streaming Show", got.Show.Name)
	require.Equal(t, "Netflix", *got.Show.WebChannel)
}
