package content

// Raw TVMaze payload shapes. Only the fields the service reads are mapped;
// everything else is dropped during decoding.

type tvShow struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Language   string         `json:"language"`
	Genres     []string       `json:"genres"`
	Status     string         `json:"status"`
	Runtime    *int           `json:"runtime"`
	Premiered  string         `json:"premiered"`
	Ended      string         `json:"ended"`
	Summary    string         `json:"summary"`
	Updated    int64          `json:"updated"`
	Rating     tvRating       `json:"rating"`
	Image      *tvImage       `json:"image"`
	Network    *tvNetwork     `json:"network"`
	WebChannel *tvNetwork     `json:"webChannel"`
	Schedule   tvShowSchedule `json:"schedule"`
	Externals  map[string]any `json:"externals"`
}

type tvRating struct {
	Average *float64 `json:"average"`
}

type tvImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

type tvNetwork struct {
	Name string `json:"name"`
}

type tvShowSchedule struct {
	Time string   `json:"time"`
	Days []string `json:"days"`
}

type tvCountry struct {
	Name string `json:"name"`
}

type tvSearchResult struct {
	Score float64 `json:"score"`
	Show  tvShow  `json:"show"`
}

type tvPerson struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Gender   string     `json:"gender"`
	Birthday string     `json:"birthday"`
	Deathday string     `json:"deathday"`
	Image    *tvImage   `json:"image"`
	Country  *tvCountry `json:"country"`
}

type tvPersonSearchResult struct {
	Score  float64  `json:"score"`
	Person tvPerson `json:"person"`
}

type tvCharacter struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type tvCastEntry struct {
	Person    tvPerson    `json:"person"`
	Character tvCharacter `json:"character"`
}

type tvCrewEntry struct {
	Type   string   `json:"type"`
	Person tvPerson `json:"person"`
}

type tvCreditEmbed struct {
	Show tvShow `json:"show"`
}

type tvCastCredit struct {
	Character tvCharacter   `json:"character"`
	Embedded  tvCreditEmbed `json:"_embedded"`
}

type tvCrewCredit struct {
	Type     string        `json:"type"`
	Embedded tvCreditEmbed `json:"_embedded"`
}

type tvEpisode struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Season  int             `json:"season"`
	Number  *int            `json:"number"`
	Airdate string          `json:"airdate"`
	Airtime string          `json:"airtime"`
	Runtime *int            `json:"runtime"`
	Rating  tvRating        `json:"rating"`
	Summary string          `json:"summary"`
	Image   *tvImage        `json:"image"`
	Show    *tvShow         `json:"show"`
	Embeds  tvEpisodeEmbeds `json:"_embedded"`
}

type tvEpisodeEmbeds struct {
	GuestCast []tvCastEntry `json:"guestcast"`
	GuestCrew []tvCrewEntry `json:"guestcrew"`
}

type tvScheduleEntry struct {
	ID       int      `json:"id"`
	Airtime  string   `json:"airtime"`
	Airstamp string   `json:"airstamp"`
	Runtime  *int     `json:"runtime"`
	Show     tvShow   `json:"show"`
	Embedded *tvEmbed `json:"_embedded"`
}

type tvEmbed struct {
	Show tvShow `json:"show"`
}

type tvSeason struct {
	ID           int    `json:"id"`
	Number       int    `json:"number"`
	EpisodeOrder *int   `json:"episodeOrder"`
	PremiereDate string `json:"premiereDate"`
	EndDate      string `json:"endDate"`
}

type tvAka struct {
	Name    string     `json:"name"`
	Country *tvCountry `json:"country"`
}

type tvShowImage struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Resolutions struct {
		Original struct {
			URL string `json:"url"`
		} `json:"original"`
	} `json:"resolutions"`
}
