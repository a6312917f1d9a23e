package apifootball

// envelope is the wrapper API-Football puts around every response.
type envelope[T any] struct {
	Get     string `json:"get"`
	Errors  any    `json:"errors"`
	Results int    `json:"results"`
	Paging  Paging `json:"paging"`
	Data    []T    `json:"response"`
}

type Paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type PlayerItem struct {
	Player     PlayerProfile     `json:"player"`
	Statistics []PlayerStatistic `json:"statistics"`
}

type PlayerProfile struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Age         *int   `json:"age"`
	Birth       Birth  `json:"birth"`
	Nationality string `json:"nationality"`
	Photo       string `json:"photo"`
}

type Birth struct {
	Date    string `json:"date"` // YYYY-MM-DD, may be null
	Place   string `json:"place"`
	Country string `json:"country"`
}

type PlayerStatistic struct {
	Team   StatTeam   `json:"team"`
	League StatLeague `json:"league"`
	Games  StatGames  `json:"games"`
	Goals  StatGoals  `json:"goals"`
}

// StatTeam is the club block of a statistics entry. Country and City are not
// always present.
type StatTeam struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Logo    string `json:"logo"`
	Country string `json:"country"`
	City    string `json:"city"`
}

type StatLeague struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Season  int    `json:"season"`
}

type StatGames struct {
	Appearences *int   `json:"appearences"`
	Minutes     *int   `json:"minutes"`
	Number      *int   `json:"number"`
	Position    string `json:"position"`
}

type StatGoals struct {
	Total   *int `json:"total"`
	Assists *int `json:"assists"`
}

type TeamItem struct {
	Team  Team  `json:"team"`
	Venue Venue `json:"venue"`
}

type Team struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Country  string `json:"country"`
	National bool   `json:"national"`
	Logo     string `json:"logo"`
}

type Venue struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type FixtureItem struct {
	Fixture FixtureInfo  `json:"fixture"`
	League  StatLeague   `json:"league"`
	Teams   FixtureTeams `json:"teams"`
}

type FixtureInfo struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"` // RFC3339
	Timestamp int64  `json:"timestamp"`
	Timezone  string `json:"timezone"`
}

type FixtureTeams struct {
	Home FixtureSide `json:"home"`
	Away FixtureSide `json:"away"`
}

type FixtureSide struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type LeagueItem struct {
	League StatLeague `json:"league"`
}
