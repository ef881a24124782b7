package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cinetrack/cinetrack/internal/cache"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
	"github.com/cinetrack/cinetrack/pkg/logger"
	"github.com/cinetrack/cinetrack/pkg/metrics"
)

const (
	contentTTL  = 24 * time.Hour
	volatileTTL = time.Hour

	minQueryLength = 2
	trendingLimit  = 20
)

// Service answers all content queries, reading through the cache and
// falling back to the TVMaze client on miss.
type Service struct {
	store  cache.Store
	client *Client
	log    *zap.Logger
}

// NewService wires a content service.
func NewService(store cache.Store, client *Client) (*Service, error) {
	if store == nil {
		return nil, errors.New("cache store is required")
	}
	if client == nil {
		return nil, errors.New("upstream client is required")
	}

	return &Service{
		store:  store,
		client: client,
		log:    logger.WithModule("content.service"),
	}, nil
}

// lookup reads and decodes a cached document. A decode failure means the
// cache holds garbage and is surfaced as an internal error.
func (s *Service) lookup(ctx context.Context, namespace, key string, dest interface{}) (bool, error) {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		return false, apperrors.Wrap(err, "cache read failed")
	}
	if !found {
		metrics.CacheLookups.WithLabelValues(namespace, "miss").Inc()
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, apperrors.Wrap(err, "cache entry is corrupted")
	}

	metrics.CacheLookups.WithLabelValues(namespace, "hit").Inc()
	return true, nil
}

// storeResult writes a document back to the cache. A write failure is
// logged but never fails the request that produced the document.
func (s *Service) storeResult(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Error("marshal cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, raw, ttl); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func emptySearchPage(page int) *SearchPage {
	return &SearchPage{Results: []ContentSummary{}, Page: page, TotalPages: 0, TotalResults: 0}
}

// SearchContent searches shows by name with optional client-side type and
// language filters. Queries shorter than two characters return an empty
// page without touching the cache or the provider.
func (s *Service) SearchContent(ctx context.Context, query, contentType, language string, page int) (*SearchPage, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return emptySearchPage(page), nil
	}

	key := searchKey(query, contentType, language, page)
	var cached SearchPage
	if found, err := s.lookup(ctx, "search", key, &cached); err != nil {
		return nil, err
	} else if found {
		return &cached, nil
	}

	var results []tvSearchResult
	if err := s.client.getJSON(ctx, "search/shows", url.Values{"q": {query}}, &results); err != nil {
		return nil, err
	}

	summaries := make([]ContentSummary, 0, len(results))
	for _, result := range results {
		show := result.Show
		if show.ID == 0 || show.Name == "" {
			continue
		}
		if contentType != "" && !strings.Contains(strings.ToLower(show.Type), strings.ToLower(contentType)) {
			continue
		}
		if language != "" && !strings.EqualFold(show.Language, language) {
			continue
		}
		summaries = append(summaries, normalizeSummary(show))
	}

	response := &SearchPage{
		Results:      summaries,
		Page:         page,
		TotalResults: len(summaries),
	}
	if len(summaries) > 0 {
		response.TotalPages = 1
		s.storeResult(ctx, key, response, volatileTTL)
	}

	return response, nil
}

// GetContentByID returns normalized details for one show.
func (s *Service) GetContentByID(ctx context.Context, tvmazeID, contentType string) (*ContentDetail, error) {
	key := contentKey(contentType, tvmazeID)
	var cached ContentDetail
	if found, err := s.lookup(ctx, "content", key, &cached); err != nil {
		return nil, err
	} else if found {
		return &cached, nil
	}

	var show tvShow
	if err := s.client.getJSON(ctx, "shows/"+url.PathEscape(tvmazeID), nil, &show); err != nil {
		return nil, err
	}

	detail := normalizeDetail(show)
	s.storeResult(ctx, key, &detail, contentTTL)
	return &detail, nil
}

// GetCastAndCrew returns the acting credits for a show. The provider has
// no crew on this endpoint, so the crew list is always empty.
func (s *Service) GetCastAndCrew(ctx context.Context, tvmazeID, contentType string) (*CreditList, error) {
	key := creditsKey(contentType, tvmazeID)
	var cached CreditList
	if found, err := s.lookup(ctx, "credits", key, &cached); err != nil {
		return nil, err
	} else if found {
		return &cached, nil
	}

	var entries []tvCastEntry
	if err := s.client.getJSON(ctx, "shows/"+url.PathEscape(tvmazeID)+"/cast", nil, &entries); err != nil {
		return nil, err
	}

	cast := make([]CastMember, 0, len(entries))
	for _, entry := range entries {
		cast = append(cast, CastMember{
			ID:         entry.Person.ID,
			Name:       entry.Person.Name,
			Character:  nullableString(entry.Character.Name),
			ProfileURL: imageMedium(entry.Person.Image),
		})
	}

	result := &CreditList{Cast: cast, Crew: []CastMember{}}
	s.storeResult(ctx, key, result, contentTTL)
	return result, nil
}

// GetSimilarContent recommends shows sharing the subject's primary genre.
func (s *Service) GetSimilarContent(ctx context.Context, tvmazeID, contentType string, page int) (*SearchPage, error) {
	key := similarKey(contentType, tvmazeID, page)
	var cached SearchPage
	if found, err := s.lookup(ctx, "similar", key, &cached); err != nil {
		return nil, err
	} else if found {
		return &cached, nil
	}

	subject, err := s.GetContentByID(ctx, tvmazeID, contentType)
	if err != nil {
		return nil, err
	}
	if len(subject.Genres) == 0 {
		return emptySearchPage(page), nil
	}

	var shows []tvShow
	if err := s.client.getJSON(ctx, "shows", url.Values{"genres": {subject.Genres[0]}}, &shows); err != nil {
		return nil, err
	}

	summaries := make([]ContentSummary, 0, len(shows))
	for _, show := range shows {
		if strconv.Itoa(show.ID) == tvmazeID {
			continue
		}
		summary := normalizeSummary(show)
		summary.Type = "tv"
		summary.Language = ""
		summaries = append(summaries, summary)
	}

	response := &SearchPage{
		Results:      summaries,
		Page:         page,
		TotalPages:   1,
		TotalResults: len(summaries),
	}
	s.storeResult(ctx, key, response, volatileTTL)
	return response, nil
}

// GetTrendingContent lists highly rated shows. The provider has no real
// trending endpoint, so a rating-sorted slice stands in.
func (s *Service) GetTrendingContent(ctx context.Context, contentType, timeWindow string) ([]ContentSummary, error) {
	key := trendingKey(contentType, timeWindow)
	var cached []ContentSummary
	if found, err := s.lookup(ctx, "trending", key, &cached); err != nil {
		return nil, err
	} else if found {
		return cached, nil
	}

	var shows []tvShow
	if err := s.client.getJSON(ctx, "shows", url.Values{"sort": {"rating"}}, &shows); err != nil {
		return nil, err
	}

	if len(shows) > trendingLimit {
		shows = shows[:trendingLimit]
	}
	summaries := make([]ContentSummary, 0, len(shows))
	for _, show := range shows {
		summary := normalizeSummary(show)
		summary.Type = "tv"
		summary.Language = ""
		summaries = append(summaries, summary)
	}

	s.storeResult(ctx, key, summaries, volatileTTL)
	return summaries, nil
}

// GetGenres aggregates the distinct genres appearing on the first page of
// the show index.
func (s *Service) GetGenres(ctx context.Context, contentType string) ([]GenreOption, error) {
	key := genresKey(contentType)
	var cached []GenreOption
	if found, err := s.lookup(ctx, "genres", key, &cached); err != nil {
		return nil, err
	} else if found {
		return cached, nil
	}

	var shows []tvShow
	if err := s.client.getJSON(ctx, "shows", nil, &shows); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, show := range shows {
		for _, genre := range show.Genres {
			seen[genre] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	genres := make([]GenreOption, 0, len(names))
	for i, name := range names {
		genres = append(genres, GenreOption{ID: i, Name: name})
	}

	s.storeResult(ctx, key, genres, contentTTL)
	return genres, nil
}

// ClearContentCache drops cached documents. With an ID every namespace is
// swept for entries about that show; without one the whole content
// namespace goes. Partial sweeps are not rolled back.
func (s *Service) ClearContentCache(ctx context.Context, tvmazeID string) error {
	if tvmazeID == "" {
		_, err := s.store.DeleteMatching(ctx, "content:*")
		return err
	}

	patterns := []string{
		fmt.Sprintf("content:*:%s", tvmazeID),
		fmt.Sprintf("credits:*:%s", tvmazeID),
		fmt.Sprintf("similar:*:%s:*", tvmazeID),
	}

	var errs error
	for _, pattern := range patterns {
		if _, err := s.store.DeleteMatching(ctx, pattern); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// GetShowDetails aggregates everything the provider knows about a show:
// core record, episodes grouped by season, cast, crew, alternate names,
// artwork and seasons.
func (s *Service) GetShowDetails(ctx context.Context, showID int) (*ShowDetail, error) {
	base := "shows/" + strconv.Itoa(showID)

	var show tvShow
	if err := s.client.getJSON(ctx, base, nil, &show); err != nil {
		return nil, err
	}

	var episodes []tvEpisode
	if err := s.client.getJSON(ctx, base+"/episodes", nil, &episodes); err != nil {
		return nil, err
	}
	var cast []tvCastEntry
	if err := s.client.getJSON(ctx, base+"/cast", nil, &cast); err != nil {
		return nil, err
	}
	var crew []tvCrewEntry
	if err := s.client.getJSON(ctx, base+"/crew", nil, &crew); err != nil {
		return nil, err
	}
	var akas []tvAka
	if err := s.client.getJSON(ctx, base+"/akas", nil, &akas); err != nil {
		return nil, err
	}
	var images []tvShowImage
	if err := s.client.getJSON(ctx, base+"/images", nil, &images); err != nil {
		return nil, err
	}
	var seasons []tvSeason
	if err := s.client.getJSON(ctx, base+"/seasons", nil, &seasons); err != nil {
		return nil, err
	}

	episodesBySeason := make(map[int][]EpisodeSummary)
	for _, episode := range episodes {
		episodesBySeason[episode.Season] = append(episodesBySeason[episode.Season], normalizeEpisodeSummary(episode))
	}

	detail := &ShowDetail{
		ID:         show.ID,
		Title:      show.Name,
		Type:       show.Type,
		Language:   show.Language,
		Genres:     show.Genres,
		Status:     show.Status,
		Runtime:    show.Runtime,
		Premiered:  show.Premiered,
		Ended:      show.Ended,
		Rating:     show.Rating.Average,
		Network:    networkName(show.Network),
		WebChannel: networkName(show.WebChannel),
		Overview:   stripParagraphTags(show.Summary),
		Schedule:   ShowSchedule(show.Schedule),
		Episodes:   episodesBySeason,
		Cast:       normalizeCastEntries(cast),
		Crew:       normalizeCrewEntries(crew),
	}

	detail.AlternateNames = make([]AlternateName, 0, len(akas))
	for _, aka := range akas {
		detail.AlternateNames = append(detail.AlternateNames, AlternateName{
			Name:    aka.Name,
			Country: countryName(aka.Country),
		})
	}

	detail.Images = make([]ShowImage, 0, len(images))
	for _, img := range images {
		detail.Images = append(detail.Images, ShowImage{
			ID:   img.ID,
			Type: img.Type,
			URL:  nullableString(img.Resolutions.Original.URL),
		})
	}

	detail.Seasons = make([]SeasonSummary, 0, len(seasons))
	for _, season := range seasons {
		detail.Seasons = append(detail.Seasons, SeasonSummary{
			ID:           season.ID,
			Number:       season.Number,
			EpisodeOrder: season.EpisodeOrder,
			PremiereDate: season.PremiereDate,
			EndDate:      season.EndDate,
		})
	}

	return detail, nil
}

// GetSchedule returns the broadcast schedule for a country, today by
// default.
func (s *Service) GetSchedule(ctx context.Context, country, date string) ([]ScheduleItem, error) {
	params := url.Values{"country": {country}}
	if date != "" {
		params.Set("date", date)
	}

	var entries []tvScheduleEntry
	if err := s.client.getJSON(ctx, "schedule", params, &entries); err != nil {
		return nil, err
	}

	items := make([]ScheduleItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, normalizeScheduleItem(entry, false))
	}
	return items, nil
}

// GetWebSchedule returns the streaming schedule.
func (s *Service) GetWebSchedule(ctx context.Context, country, date string) ([]ScheduleItem, error) {
	params := url.Values{"country": {country}}
	if date != "" {
		params.Set("date", date)
	}

	var entries []tvScheduleEntry
	if err := s.client.getJSON(ctx, "schedule/web", params, &entries); err != nil {
		return nil, err
	}

	items := make([]ScheduleItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, normalizeScheduleItem(entry, true))
	}
	return items, nil
}

// SearchPeople searches people by name.
func (s *Service) SearchPeople(ctx context.Context, query string) ([]PersonSummary, error) {
	var results []tvPersonSearchResult
	if err := s.client.getJSON(ctx, "search/people", url.Values{"q": {query}}, &results); err != nil {
		return nil, err
	}

	people := make([]PersonSummary, 0, len(results))
	for _, result := range results {
		people = append(people, normalizePersonSummary(result.Person))
	}
	return people, nil
}

// GetPersonDetails returns a person with their acting and crew credits.
func (s *Service) GetPersonDetails(ctx context.Context, personID int) (*PersonDetail, error) {
	base := "people/" + strconv.Itoa(personID)

	var person tvPerson
	if err := s.client.getJSON(ctx, base, nil, &person); err != nil {
		return nil, err
	}

	var castCredits []tvCastCredit
	if err := s.client.getJSON(ctx, base+"/castcredits", url.Values{"embed": {"show"}}, &castCredits); err != nil {
		return nil, err
	}
	var crewCredits []tvCrewCredit
	if err := s.client.getJSON(ctx, base+"/crewcredits", url.Values{"embed": {"show"}}, &crewCredits); err != nil {
		return nil, err
	}

	detail := &PersonDetail{
		ID:       person.ID,
		Name:     person.Name,
		Image:    imageOriginal(person.Image),
		Gender:   person.Gender,
		Birthday: nullableString(person.Birthday),
		Deathday: nullableString(person.Deathday),
		Country:  countryName(person.Country),
	}

	detail.CastRoles = make([]PersonCastRole, 0, len(castCredits))
	for _, credit := range castCredits {
		show := credit.Embedded.Show
		detail.CastRoles = append(detail.CastRoles, PersonCastRole{
			Character: nullableString(credit.Character.Name),
			Show:      ShowRef{ID: show.ID, Name: show.Name, Image: imageMedium(show.Image)},
		})
	}

	detail.CrewRoles = make([]PersonCrewRole, 0, len(crewCredits))
	for _, credit := range crewCredits {
		show := credit.Embedded.Show
		detail.CrewRoles = append(detail.CrewRoles, PersonCrewRole{
			Type: credit.Type,
			Show: ShowRef{ID: show.ID, Name: show.Name, Image: imageMedium(show.Image)},
		})
	}

	return detail, nil
}

// GetEpisodeDetails returns one episode with guest credits.
func (s *Service) GetEpisodeDetails(ctx context.Context, episodeID int) (*EpisodeDetail, error) {
	var episode tvEpisode
	params := url.Values{"embed[]": {"guestcast", "guestcrew"}}
	if err := s.client.getJSON(ctx, "episodes/"+strconv.Itoa(episodeID), params, &episode); err != nil {
		return nil, err
	}

	return &EpisodeDetail{
		ID:        episode.ID,
		Name:      episode.Name,
		Season:    episode.Season,
		Number:    episode.Number,
		Airdate:   episode.Airdate,
		Airtime:   episode.Airtime,
		Runtime:   episode.Runtime,
		Rating:    episode.Rating.Average,
		Image:     imageOriginal(episode.Image),
		Summary:   stripParagraphTags(episode.Summary),
		GuestCast: normalizeCastEntries(episode.Embeds.GuestCast),
		GuestCrew: normalizeCrewEntries(episode.Embeds.GuestCrew),
	}, nil
}

var allowedLookupSources = map[string]struct{}{
	"imdb":    {},
	"thetvdb": {},
	"tvrage":  {},
}

// GetShowByExternalID resolves a show via an external database ID.
func (s *Service) GetShowByExternalID(ctx context.Context, externalID, source string) (*ExternalLookupResult, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	if _, ok := allowedLookupSources[source]; !ok {
		return nil, apperrors.NewBadRequest("Unsupported external ID source")
	}

	var show tvShow
	if err := s.client.getJSON(ctx, "lookup/shows", url.Values{source: {externalID}}, &show); err != nil {
		return nil, err
	}

	return &ExternalLookupResult{
		ID:        show.ID,
		Title:     show.Name,
		Type:      show.Type,
		Language:  show.Language,
		Genres:    show.Genres,
		Status:    show.Status,
		Runtime:   show.Runtime,
		Premiered: show.Premiered,
		Rating:    show.Rating.Average,
		Image:     imageOriginal(show.Image),
		Summary:   stripParagraphTags(show.Summary),
	}, nil
}

// GetShowUpdates returns show IDs mapped to their last-update timestamps.
func (s *Service) GetShowUpdates(ctx context.Context, since string) (map[string]int64, error) {
	return s.updates(ctx, "updates/shows", since)
}

// GetPersonUpdates returns person IDs mapped to their last-update
// timestamps.
func (s *Service) GetPersonUpdates(ctx context.Context, since string) (map[string]int64, error) {
	return s.updates(ctx, "updates/people", since)
}

func (s *Service) updates(ctx context.Context, path, since string) (map[string]int64, error) {
	var params url.Values
	if since != "" {
		params = url.Values{"since": {since}}
	}

	updates := make(map[string]int64)
	if err := s.client.getJSON(ctx, path, params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// GetShowIndex returns one page of the provider's full show catalogue.
func (s *Service) GetShowIndex(ctx context.Context, page int) ([]IndexShow, error) {
	var shows []tvShow
	if err := s.client.getJSON(ctx, "shows", url.Values{"page": {strconv.Itoa(page)}}, &shows); err != nil {
		return nil, err
	}

	index := make([]IndexShow, 0, len(shows))
	for _, show := range shows {
		index = append(index, IndexShow{
			ID:        show.ID,
			Title:     show.Name,
			Type:      show.Type,
			Language:  show.Language,
			Genres:    show.Genres,
			Status:    show.Status,
			Runtime:   show.Runtime,
			Premiered: show.Premiered,
			Rating:    show.Rating.Average,
			Image:     imageMedium(show.Image),
		})
	}
	return index, nil
}

// GetPeopleIndex returns one page of the provider's person catalogue.
func (s *Service) GetPeopleIndex(ctx context.Context, page int) ([]PersonSummary, error) {
	var people []tvPerson
	if err := s.client.getJSON(ctx, "people", url.Values{"page": {strconv.Itoa(page)}}, &people); err != nil {
		return nil, err
	}

	summaries := make([]PersonSummary, 0, len(people))
	for _, person := range people {
		summaries = append(summaries, normalizePersonSummary(person))
	}
	return summaries, nil
}
