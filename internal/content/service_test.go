package content

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cinetrack/cinetrack/internal/cache"
	"github.com/cinetrack/cinetrack/internal/database/testutil"
)

const searchPayload = `[
  {"score": 0.9, "show": {
    "id": 1, "name": "Batman", "type": "Animation", "language": "English",
    "genres": ["Action"], "status": "Ended", "runtime": 30,
    "premiered": "1992-09-05", "summary": "<p>The Dark Knight.</p>",
    "rating": {"average": 8.5},
    "image": {"medium": "m.jpg", "original": "o.jpg"}
  }},
  {"score": 0.5, "show": {
    "id": 2, "name": "Batman Beyond", "type": "Scripted", "language": "Japanese",
    "genres": ["Action"], "status": "Ended",
    "rating": {"average": null}
  }}
]`

const showPayload = `{
  "id": 42, "name": "Some Show", "type": "Scripted", "language": "English",
  "genres": ["Drama", "Crime"], "status": "Running", "runtime": 60,
  "premiered": "2020-01-01", "summary": "<p>An ordinary drama.</p>",
  "rating": {"average": 7.7},
  "image": {"medium": "m.jpg", "original": "o.jpg"},
  "network": {"name": "HBO"},
  "schedule": {"time": "21:00", "days": ["Monday"]},
  "externals": {"imdb": "tt0000001"},
  "updated": 1700000000
}`

type upstreamStub struct {
	server *httptest.Server
	calls  map[string]*int32
}

// newUpstream serves canned payloads per path and counts requests.
func newUpstream(t *testing.T, payloads map[string]string) *upstreamStub {
	t.Helper()

	stub := &upstreamStub{calls: make(map[string]*int32)}
	for path := range payloads {
		stub.calls[path] = new(int32)
	}

	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := payloads[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		atomic.AddInt32(stub.calls[r.URL.Path], 1)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *upstreamStub) count(path string) int32 {
	counter, ok := s.calls[path]
	if !ok {
		return 0
	}
	return atomic.LoadInt32(counter)
}

func newService(t *testing.T, baseURL string) (*Service, cache.Store) {
	t.Helper()

	store, err := cache.NewDatabaseStore(testutil.MustOpenTestDB(t, testutil.WithAutoMigrate()))
	require.NoError(t, err)

	client := NewClient(WithBaseURL(baseURL), WithRetryBackoff(time.Millisecond, 5*time.Millisecond))
	svc, err := NewService(store, client)
	require.NoError(t, err)
	return svc, store
}

func TestSearchShortQuerySkipsUpstream(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/search/shows": searchPayload})
	svc, store := newService(t, stub.server.URL)
	ctx := context.Background()

	for _, query := range []string{"", " ", "a", " b "} {
		page, err := svc.SearchContent(ctx, query, "", "", 1)
		require.NoError(t, err)
		require.Empty(t, page.Results)
		require.Zero(t, page.TotalResults)
	}

	require.Zero(t, stub.count("/search/shows"))

	// Short-circuiting never writes cache entries either.
	removed, err := store.DeleteMatching(ctx, "search:*")
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestSearchServesSecondCallFromCache(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/search/shows": searchPayload})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	first, err := svc.SearchContent(ctx, "batman", "", "", 1)
	require.NoError(t, err)
	require.Len(t, first.Results, 2)

	second, err := svc.SearchContent(ctx, "batman", "", "", 1)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int32(1), stub.count("/search/shows"))
}

func TestSearchFiltersTypeAndLanguage(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/search/shows": searchPayload})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	byType, err := svc.SearchContent(ctx, "batman", "animation", "", 1)
	require.NoError(t, err)
	require.Len(t, byType.Results, 1)
	require.Equal(t, "Batman", byType.Results[0].Title)

	byLanguage, err := svc.SearchContent(ctx, "batman", "", "japanese", 1)
	require.NoError(t, err)
	require.Len(t, byLanguage.Results, 1)
	require.Equal(t, "Batman Beyond", byLanguage.Results[0].Title)
}

func TestSearchEmptyResultIsNotCached(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/search/shows": "[]"})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		page, err := svc.SearchContent(ctx, "nothing here", "", "", 1)
		require.NoError(t, err)
		require.Empty(t, page.Results)
	}
	require.Equal(t, int32(2), stub.count("/search/shows"))
}

func TestGetContentByIDNormalizesAndCaches(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/shows/42": showPayload})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	detail, err := svc.GetContentByID(ctx, "42", "series")
	require.NoError(t, err)
	require.Equal(t, "Some Show", detail.Title)
	require.Equal(t, "An ordinary drama.", detail.Overview)
	require.Equal(t, "HBO", *detail.Network)
	require.Equal(t, "tv", detail.Type)
	require.Equal(t, 7.7, *detail.Rating)
	require.Equal(t, "tt0000001", detail.Externals["imdb"])

	again, err := svc.GetContentByID(ctx, "42", "series")
	require.NoError(t, err)
	require.Equal(t, detail, again)
	require.Equal(t, int32(1), stub.count("/shows/42"))
}

func TestGetCastAndCrewCaches(t *testing.T) {
	payload := `[{"person": {"id": 5, "name": "Jane Actor", "image": {"medium": "jane.jpg"}},
	              "character": {"id": 9, "name": "The Lead"}}]`
	stub := newUpstream(t, map[string]string{"/shows/42/cast": payload})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	credits, err := svc.GetCastAndCrew(ctx, "42", "series")
	require.NoError(t, err)
	require.Len(t, credits.Cast, 1)
	require.Equal(t, "Jane Actor", credits.Cast[0].Name)
	require.Equal(t, "The Lead", *credits.Cast[0].Character)
	require.Empty(t, credits.Crew)

	_, err = svc.GetCastAndCrew(ctx, "42", "series")
	require.NoError(t, err)
	require.Equal(t, int32(1), stub.count("/shows/42/cast"))
}

func TestGetSimilarContentExcludesSubject(t *testing.T) {
	similarPayload := `[
	  {"id": 42, "name": "Some Show", "genres": ["Drama"]},
	  {"id": 43, "name": "Other Drama", "genres": ["Drama"], "rating": {"average": 6.0}}
	]`
	stub := newUpstream(t, map[string]string{
		"/shows/42": showPayload,
		"/shows":    similarPayload,
	})
	svc, _ := newService(t, stub.server.URL)

	page, err := svc.GetSimilarContent(context.Background(), "42", "series", 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.Equal(t, "Other Drama", page.Results[0].Title)
}

func TestGetTrendingCaches(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/shows": `[
	  {"id": 1, "name": "A"}, {"id": 2, "name": "B"}
	]`})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	trending, err := svc.GetTrendingContent(ctx, "all", "day")
	require.NoError(t, err)
	require.Len(t, trending, 2)

	_, err = svc.GetTrendingContent(ctx, "all", "day")
	require.NoError(t, err)
	require.Equal(t, int32(1), stub.count("/shows"))
}

func TestGetTrendingCapsResultCount(t *testing.T) {
	shows := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		shows = append(shows, fmt.Sprintf(`{"id": %d, "name": "Show %d"}`, i+1, i+1))
	}
	stub := newUpstream(t, map[string]string{"/shows": "[" + strings.Join(shows, ",") + "]"})
	svc, _ := newService(t, stub.server.URL)

	trending, err := svc.GetTrendingContent(context.Background(), "all", "day")
	require.NoError(t, err)
	require.Len(t, trending, trendingLimit)
}

func TestGetGenresAggregatesSorted(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/shows": `[
	  {"id": 1, "name": "A", "genres": ["Drama", "Action"]},
	  {"id": 2, "name": "B", "genres": ["Action", "Comedy"]}
	]`})
	svc, _ := newService(t, stub.server.URL)

	genres, err := svc.GetGenres(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, genres, 3)
	require.Equal(t, "Action", genres[0].Name)
	require.Equal(t, "Comedy", genres[1].Name)
	require.Equal(t, "Drama", genres[2].Name)
}

func TestClearContentCacheByID(t *testing.T) {
	stub := newUpstream(t, map[string]string{
		"/shows/42":      showPayload,
		"/shows/43":      showPayload,
		"/shows/42/cast": "[]",
	})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	_, err := svc.GetContentByID(ctx, "42", "series")
	require.NoError(t, err)
	_, err = svc.GetContentByID(ctx, "43", "series")
	require.NoError(t, err)
	_, err = svc.GetCastAndCrew(ctx, "42", "series")
	require.NoError(t, err)

	require.NoError(t, svc.ClearContentCache(ctx, "42"))

	// 42 is refetched, 43 still comes from cache.
	_, err = svc.GetContentByID(ctx, "42", "series")
	require.NoError(t, err)
	_, err = svc.GetContentByID(ctx, "43", "series")
	require.NoError(t, err)
	require.Equal(t, int32(2), stub.count("/shows/42"))
	require.Equal(t, int32(1), stub.count("/shows/43"))

	_, err = svc.GetCastAndCrew(ctx, "42", "series")
	require.NoError(t, err)
	require.Equal(t, int32(2), stub.count("/shows/42/cast"))
}

func TestClearContentCacheSweepsNamespace(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/shows/42": showPayload})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	_, err := svc.GetContentByID(ctx, "42", "series")
	require.NoError(t, err)
	require.NoError(t, svc.ClearContentCache(ctx, ""))

	_, err = svc.GetContentByID(ctx, "42", "series")
	require.NoError(t, err)
	require.Equal(t, int32(2), stub.count("/shows/42"))
}

func TestGetShowDetailsGroupsEpisodesBySeason(t *testing.T) {
	stub := newUpstream(t, map[string]string{
		"/shows/42": showPayload,
		"/shows/42/episodes": `[
		  {"id": 100, "name": "Pilot", "season": 1, "number": 1, "summary": "<p>Start.</p>"},
		  {"id": 101, "name": "Two", "season": 1, "number": 2},
		  {"id": 200, "name": "Reboot", "season": 2, "number": 1}
		]`,
		"/shows/42/cast":    `[{"person": {"id": 5, "name": "Jane"}, "character": {"id": 9, "name": "Lead"}}]`,
		"/shows/42/crew":    `[{"type": "Creator", "person": {"id": 6, "name": "Sam"}}]`,
		"/shows/42/akas":    `[{"name": "Autre Nom", "country": {"name": "France"}}]`,
		"/shows/42/images":  `[{"id": 1, "type": "poster", "resolutions": {"original": {"url": "p.jpg"}}}]`,
		"/shows/42/seasons": `[{"id": 10, "number": 1, "episodeOrder": 2}, {"id": 11, "number": 2}]`,
	})
	svc, _ := newService(t, stub.server.URL)

	detail, err := svc.GetShowDetails(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "Some Show", detail.Title)
	require.Len(t, detail.Episodes[1], 2)
	require.Len(t, detail.Episodes[2], 1)
	require.Equal(t, "Start.", detail.Episodes[1][0].Summary)
	require.Len(t, detail.Cast, 1)
	require.Equal(t, "Creator", detail.Crew[0].Type)
	require.Equal(t, "France", *detail.AlternateNames[0].Country)
	require.Equal(t, "p.jpg", *detail.Images[0].URL)
	require.Len(t, detail.Seasons, 2)
}

func TestGetShowByExternalIDValidatesSource(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/lookup/shows": showPayload})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	_, err := svc.GetShowByExternalID(ctx, "tt0000001", "wikipedia")
	require.Error(t, err)
	require.Zero(t, stub.count("/lookup/shows"))

	result, err := svc.GetShowByExternalID(ctx, "tt0000001", "imdb")
	require.NoError(t, err)
	require.Equal(t, 42, result.ID)
	require.Equal(t, "An ordinary drama.", result.Summary)
}

func TestGetUpdates(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/updates/shows": `{"1": 1700000000, "2": 1700000500}`})
	svc, _ := newService(t, stub.server.URL)

	updates, err := svc.GetShowUpdates(context.Background(), "day")
	require.NoError(t, err)
	require.Equal(t, int64(1700000500), updates["2"])
}

func TestGetScheduleNormalizesShows(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/schedule": `[
	  {"id": 1, "airtime": "20:00", "airstamp": "2026-08-29T20:00:00+00:00",
	   "show": {"id": 3, "name": "Tonight", "type": "Talk Show", "language": "English",
	            "status": "Running", "image": {"medium": "t.jpg"}}}
	]`})
	svc, _ := newService(t, stub.server.URL)

	items, err := svc.GetSchedule(context.Background(), "US", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Tonight", items[0].Show.Name)
	require.Equal(t, "t.jpg", *items[0].Show.Image)
}

func TestSearchPeople(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/search/people": `[
	  {"score": 1.0, "person": {"id": 7, "name": "Jane Actor", "gender": "Female",
	    "birthday": "1980-01-01", "country": {"name": "United States"}}}
	]`})
	svc, _ := newService(t, stub.server.URL)

	people, err := svc.SearchPeople(context.Background(), "jane")
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.Equal(t, "Jane Actor", people[0].Name)
	require.Equal(t, "United States", *people[0].Country)
}

func TestGetPersonDetailsMergesCredits(t *testing.T) {
	stub := newUpstream(t, map[string]string{
		"/people/7": `{"id": 7, "name": "Jane Actor", "gender": "Female"}`,
		"/people/7/castcredits": `[
		  {"character": {"name": "Lead"}, "_embedded": {"show": {"id": 42, "name": "Some Show"}}}
		]`,
		"/people/7/crewcredits": `[
		  {"type": "Producer", "_embedded": {"show": {"id": 43, "name": "Other Show"}}}
		]`,
	})
	svc, _ := newService(t, stub.server.URL)

	detail, err := svc.GetPersonDetails(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Jane Actor", detail.Name)
	require.Len(t, detail.CastRoles, 1)
	require.Equal(t, "Some Show", detail.CastRoles[0].Show.Name)
	require.Len(t, detail.CrewRoles, 1)
	require.Equal(t, "Producer", detail.CrewRoles[0].Type)
}

func TestGetEpisodeDetails(t *testing.T) {
	stub := newUpstream(t, map[string]string{"/episodes/100": `{
	  "id": 100, "name": "Pilot", "season": 1, "number": 1,
	  "summary": "<p>Start.</p>", "rating": {"average": 8.0},
	  "_embedded": {"guestcast": [{"person": {"id": 5, "name": "Guest"}, "character": {"id": 1, "name": "Visitor"}}],
	                "guestcrew": []}
	}`})
	svc, _ := newService(t, stub.server.URL)

	episode, err := svc.GetEpisodeDetails(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, "Pilot", episode.Name)
	require.Equal(t, "Start.", episode.Summary)
	require.Len(t, episode.GuestCast, 1)
	require.Equal(t, "Guest", episode.GuestCast[0].Person.Name)
}

func TestIndexEndpoints(t *testing.T) {
	stub := newUpstream(t, map[string]string{
		"/shows":  `[{"id": 1, "name": "A"}, {"id": 2, "name": "B"}]`,
		"/people": `[{"id": 7, "name": "Jane"}]`,
	})
	svc, _ := newService(t, stub.server.URL)
	ctx := context.Background()

	shows, err := svc.GetShowIndex(ctx, 0)
	require.NoError(t, err)
	require.Len(t, shows, 2)

	people, err := svc.GetPeopleIndex(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "Jane", people[0].Name)
}
