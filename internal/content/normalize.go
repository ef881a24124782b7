package content

import "strings"

// Normalized response shapes. Absent upstream fields stay null in the JSON
// output instead of being omitted, so clients get a stable schema.

// ContentSummary is the list-item shape used by search, similar and
// trending responses.
type ContentSummary struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterURL   *string  `json:"poster_url"`
	BackdropURL *string  `json:"backdrop_url"`
	ReleaseDate *string  `json:"release_date"`
	Rating      *float64 `json:"rating"`
	Genres      []string `json:"genres"`
	Status      string   `json:"status"`
	Runtime     *int     `json:"runtime"`
	Type        string   `json:"type"`
	Language    string   `json:"language,omitempty"`
}

// ContentDetail extends the summary with fields only present on the detail
// endpoint.
type ContentDetail struct {
	ContentSummary
	Network    *string        `json:"network"`
	Schedule   ShowSchedule   `json:"schedule"`
	WebChannel *string        `json:"web_channel"`
	Externals  map[string]any `json:"externals"`
	Updated    int64          `json:"updated"`
}

// ShowSchedule mirrors the upstream airing schedule block.
type ShowSchedule struct {
	Time string   `json:"time"`
	Days []string `json:"days"`
}

// SearchPage wraps a result list with pagination metadata.
type SearchPage struct {
	Results      []ContentSummary `json:"results"`
	Page         int              `json:"page"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
}

// CastMember is one acting credit on a show.
type CastMember struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Character  *string `json:"character"`
	ProfileURL *string `json:"profile_url"`
}

// CreditList groups cast and crew. The provider exposes no crew on the
// basic cast endpoint, so crew stays empty there.
type CreditList struct {
	Cast []CastMember `json:"cast"`
	Crew []CastMember `json:"crew"`
}

// GenreOption is a selectable genre.
type GenreOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PersonRef is a compact person reference used inside richer shapes.
type PersonRef struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// CharacterRef is a compact character reference.
type CharacterRef struct {
	ID   int     `json:"id"`
	Name *string `json:"name"`
}

// ShowCastEntry pairs a person with the character they play.
type ShowCastEntry struct {
	Person    PersonRef    `json:"person"`
	Character CharacterRef `json:"character"`
}

// ShowCrewEntry pairs a person with their crew role.
type ShowCrewEntry struct {
	Person PersonRef `json:"person"`
	Type   string    `json:"type"`
}

// AlternateName is a localised show title.
type AlternateName struct {
	Name    string  `json:"name"`
	Country *string `json:"country"`
}

// ShowImage is one artwork entry.
type ShowImage struct {
	ID   int     `json:"id"`
	Type string  `json:"type"`
	URL  *string `json:"url"`
}

// SeasonSummary is one season of a show.
type SeasonSummary struct {
	ID           int    `json:"id"`
	Number       int    `json:"number"`
	EpisodeOrder *int   `json:"episodeOrder"`
	PremiereDate string `json:"premiereDate"`
	EndDate      string `json:"endDate"`
}

// EpisodeSummary is one episode row grouped under its season.
type EpisodeSummary struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Season  int      `json:"season"`
	Number  *int     `json:"number"`
	Airdate string   `json:"airdate"`
	Runtime *int     `json:"runtime"`
	Rating  *float64 `json:"rating"`
	Image   *string  `json:"image"`
	Summary string   `json:"summary"`
}

// ShowDetail is the aggregated everything-about-a-show response.
type ShowDetail struct {
	ID             int                      `json:"id"`
	Title          string                   `json:"title"`
	Type           string                   `json:"type"`
	Language       string                   `json:"language"`
	Genres         []string                 `json:"genres"`
	Status         string                   `json:"status"`
	Runtime        *int                     `json:"runtime"`
	Premiered      string                   `json:"premiered"`
	Ended          string                   `json:"ended"`
	Rating         *float64                 `json:"rating"`
	Network        *string                  `json:"network"`
	WebChannel     *string                  `json:"webChannel"`
	Overview       string                   `json:"overview"`
	Schedule       ShowSchedule             `json:"schedule"`
	Episodes       map[int][]EpisodeSummary `json:"episodes"`
	Cast           []ShowCastEntry          `json:"cast"`
	Crew           []ShowCrewEntry          `json:"crew"`
	AlternateNames []AlternateName          `json:"alternateNames"`
	Images         []ShowImage              `json:"images"`
	Seasons        []SeasonSummary          `json:"seasons"`
}

// ScheduleShow is the compact show block inside a schedule item.
type ScheduleShow struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Language   string  `json:"language"`
	Status     string  `json:"status"`
	Image      *string `json:"image"`
	WebChannel *string `json:"webChannel,omitempty"`
}

// ScheduleItem is one airing in a broadcast or streaming schedule.
type ScheduleItem struct {
	ID       int          `json:"id"`
	Airtime  string       `json:"airtime"`
	Airstamp string       `json:"airstamp"`
	Runtime  *int         `json:"runtime"`
	Show     ScheduleShow `json:"show"`
}

// PersonSummary is the list-item shape for person search and the person
// index.
type PersonSummary struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Image    *string `json:"image"`
	Birthday *string `json:"birthday"`
	Deathday *string `json:"deathday"`
	Gender   string  `json:"gender"`
	Country  *string `json:"country"`
}

// PersonCastRole is one acting credit of a person.
type PersonCastRole struct {
	Character *string  `json:"character"`
	Show      ShowRef  `json:"show"`
}

// PersonCrewRole is one crew credit of a person.
type PersonCrewRole struct {
	Type string  `json:"type"`
	Show ShowRef `json:"show"`
}

// ShowRef is a compact show reference.
type ShowRef struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// PersonDetail is the full person response including credits.
type PersonDetail struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Image     *string          `json:"image"`
	Gender    string           `json:"gender"`
	Birthday  *string          `json:"birthday"`
	Deathday  *string          `json:"deathday"`
	Country   *string          `json:"country"`
	CastRoles []PersonCastRole `json:"castRoles"`
	CrewRoles []PersonCrewRole `json:"crewRoles"`
}

// EpisodeDetail is the full episode response including guest credits.
type EpisodeDetail struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Season    int             `json:"season"`
	Number    *int            `json:"number"`
	Airdate   string          `json:"airdate"`
	Airtime   string          `json:"airtime"`
	Runtime   *int            `json:"runtime"`
	Rating    *float64        `json:"rating"`
	Image     *string         `json:"image"`
	Summary   string          `json:"summary"`
	GuestCast []ShowCastEntry `json:"guestCast"`
	GuestCrew []ShowCrewEntry `json:"guestCrew"`
}

// ExternalLookupResult is the normalized shape for external-ID lookups.
type ExternalLookupResult struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	Language  string   `json:"language"`
	Genres    []string `json:"genres"`
	Status    string   `json:"status"`
	Runtime   *int     `json:"runtime"`
	Premiered string   `json:"premiered"`
	Rating    *float64 `json:"rating"`
	Image     *string  `json:"image"`
	Summary   string   `json:"summary"`
}

// IndexShow is one row of the paginated show index.
type IndexShow struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	Language  string   `json:"language"`
	Genres    []string `json:"genres"`
	Status    string   `json:"status"`
	Runtime   *int     `json:"runtime"`
	Premiered string   `json:"premiered"`
	Rating    *float64 `json:"rating"`
	Image     *string  `json:"image"`
}

// stripParagraphTags removes the paragraph markup TVMaze wraps summaries in.
func stripParagraphTags(s string) string {
	s = strings.ReplaceAll(s, "<p>", "")
	return strings.ReplaceAll(s, "</p>", "")
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func imageMedium(img *tvImage) *string {
	if img == nil {
		return nil
	}
	return nullableString(img.Medium)
}

func imageOriginal(img *tvImage) *string {
	if img == nil {
		return nil
	}
	return nullableString(img.Original)
}

func networkName(n *tvNetwork) *string {
	if n == nil {
		return nil
	}
	return nullableString(n.Name)
}

func countryName(c *tvCountry) *string {
	if c == nil {
		return nil
	}
	return nullableString(c.Name)
}

func normalizeSummary(show tvShow) ContentSummary {
	return ContentSummary{
		ID:          show.ID,
		Title:       show.Name,
		Overview:    stripParagraphTags(show.Summary),
		PosterURL:   imageMedium(show.Image),
		BackdropURL: imageOriginal(show.Image),
		ReleaseDate: nullableString(show.Premiered),
		Rating:      show.Rating.Average,
		Genres:      show.Genres,
		Status:      show.Status,
		Runtime:     show.Runtime,
		Type:        strings.ToLower(show.Type),
		Language:    strings.ToLower(show.Language),
	}
}

func normalizeDetail(show tvShow) ContentDetail {
	detail := ContentDetail{
		ContentSummary: normalizeSummary(show),
		Network:        networkName(show.Network),
		Schedule:       ShowSchedule(show.Schedule),
		WebChannel:     networkName(show.WebChannel),
		Externals:      show.Externals,
		Updated:        show.Updated,
	}
	detail.Type = "tv"
	detail.Language = ""
	return detail
}

func normalizePersonRef(p tvPerson) PersonRef {
	return PersonRef{ID: p.ID, Name: p.Name, Image: imageMedium(p.Image)}
}

func normalizeCharacterRef(c tvCharacter) CharacterRef {
	return CharacterRef{ID: c.ID, Name: nullableString(c.Name)}
}

func normalizeCastEntries(entries []tvCastEntry) []ShowCastEntry {
	out := make([]ShowCastEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ShowCastEntry{
			Person:    normalizePersonRef(e.Person),
			Character: normalizeCharacterRef(e.Character),
		})
	}
	return out
}

func normalizeCrewEntries(entries []tvCrewEntry) []ShowCrewEntry {
	out := make([]ShowCrewEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ShowCrewEntry{
			Person: normalizePersonRef(e.Person),
			Type:   e.Type,
		})
	}
	return out
}

func normalizePersonSummary(p tvPerson) PersonSummary {
	return PersonSummary{
		ID:       p.ID,
		Name:     p.Name,
		Image:    imageMedium(p.Image),
		Birthday: nullableString(p.Birthday),
		Deathday: nullableString(p.Deathday),
		Gender:   p.Gender,
		Country:  countryName(p.Country),
	}
}

func normalizeEpisodeSummary(e tvEpisode) EpisodeSummary {
	return EpisodeSummary{
		ID:      e.ID,
		Name:    e.Name,
		Season:  e.Season,
		Number:  e.Number,
		Airdate: e.Airdate,
		Runtime: e.Runtime,
		Rating:  e.Rating.Average,
		Image:   imageMedium(e.Image),
		Summary: stripParagraphTags(e.Summary),
	}
}

func normalizeScheduleItem(entry tvScheduleEntry, includeWebChannel bool) ScheduleItem {
	show := entry.Show
	if show.ID == 0 && entry.Embedded != nil {
		show = entry.Embedded.Show
	}

	item := ScheduleItem{
		ID:       entry.ID,
		Airtime:  entry.Airtime,
		Airstamp: entry.Airstamp,
		Runtime:  entry.Runtime,
		Show: ScheduleShow{
			ID:       show.ID,
			Name:     show.Name,
			Type:     show.Type,
			Language: show.Language,
			Status:   show.Status,
			Image:    imageMedium(show.Image),
		},
	}
	if includeWebChannel {
		item.Show.WebChannel = networkName(show.WebChannel)
	}
	return item
}
