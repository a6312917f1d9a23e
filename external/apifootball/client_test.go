package apifootball

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/israelis-abroad/footballmap/internal/usecase"
)

const playersPayload = `{
  "get": "players",
  "parameters": {"season": "2023", "league": "271"},
  "errors": [],
  "results": 2,
  "paging": {"current": 1, "total": 3},
  "response": [
    {
      "player": {"id": 1001, "name": "M. Solomon", "age": 24, "birth": {"date": "1999-07-24", "place": "Kfar Saba", "country": "Israel"}, "nationality": "Israel", "photo": "https://media.api-sports.io/football/players/1001.png"},
      "statistics": [
        {"team": {"id": 604, "name": "Maccabi Tel Aviv", "logo": ""}, "league": {"id": 271, "name": "Ligat Ha'al", "country": "Israel", "season": 2023}, "games": {"appearences": 3, "number": null, "position": "Attacker"}, "goals": {"total": null, "assists": 1}},
        {"team": {"id": 47, "name": "Tottenham", "country": "England", "city": "London"}, "league": {"id": 39, "name": "Premier League", "country": "England", "season": 2023}, "games": {"appearences": 12, "number": 27, "position": "Attacker"}, "goals": {"total": 1, "assists": null}}
      ]
    },
    {
      "player": {"id": 1002, "name": "E. Zahavi", "birth": {"date": null}, "nationality": "Israel", "photo": ""},
      "statistics": [
        {"team": {"id": 2, "name": "Some Club"}, "league": {"id": 2, "name": "UEFA Champions League", "country": "World"}, "games": {"appearences": null}, "goals": {}}
      ]
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		APIKey:     "secret-key",
		Host:       "api-football-v1.p.rapidapi.com",
	})
}

func TestClient_ListPlayersByLeague_MapsPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("season"); got != "2023" {
			t.Errorf("unexpected season: %s", got)
		}
		if got := r.URL.Query().Get("league"); got != "271" {
			t.Errorf("unexpected league: %s", got)
		}
		if r.URL.Query().Has("page") {
			t.Errorf("first page must not send page parameter")
		}
		if got := r.Header.Get("x-rapidapi-key"); got != "secret-key" {
			t.Errorf("unexpected api key header: %s", got)
		}
		if got := r.Header.Get("x-rapidapi-host"); got != "api-football-v1.p.rapidapi.com" {
			t.Errorf("unexpected host header: %s", got)
		}
		_, _ = w.Write([]byte(playersPayload))
	})

	page, err := client.ListPlayersByLeague(context.Background(), 2023, 271, 1)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if page.CurrentPage != 1 || page.TotalPages != 3 {
		t.Fatalf("unexpected paging: %+v", page)
	}
	if len(page.Players) != 2 {
		t.Fatalf("expected two players, got=%d", len(page.Players))
	}

	first := page.Players[0]
	if first.ExternalID != 1001 || first.Nationality != "Israel" {
		t.Fatalf("unexpected first player: %+v", first)
	}
	if first.BirthDate == nil || first.BirthDate.Format("2006-01-02") != "1999-07-24" {
		t.Fatalf("unexpected birth date: %v", first.BirthDate)
	}
	if len(first.Statistics) != 2 {
		t.Fatalf("expected two statistics entries, got=%d", len(first.Statistics))
	}
	home := first.Statistics[0]
	if home.TeamCountry != "Israel" {
		t.Fatalf("expected league country fallback, got=%s", home.TeamCountry)
	}
	if home.Goals != nil || home.ShirtNumber != nil {
		t.Fatalf("expected null counters to stay nil: %+v", home)
	}
	abroad := first.Statistics[1]
	if abroad.TeamCountry != "England" || abroad.TeamCity != "London" {
		t.Fatalf("unexpected abroad entry: %+v", abroad)
	}
	if abroad.Appearances == nil || *abroad.Appearances != 12 || abroad.ShirtNumber == nil || *abroad.ShirtNumber != 27 {
		t.Fatalf("unexpected abroad counters: %+v", abroad)
	}

	second := page.Players[1]
	if second.BirthDate != nil {
		t.Fatalf("expected nil birth date for null value")
	}
	if second.Statistics[0].TeamCountry != "" {
		t.Fatalf("expected international competition country to be dropped, got=%s", second.Statistics[0].TeamCountry)
	}
}

func TestClient_ListPlayersByLeague_SendsPageAfterFirst(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("expected page=2, got=%q", got)
		}
		_, _ = w.Write([]byte(`{"errors": [], "paging": {"current": 2, "total": 2}, "response": []}`))
	})

	page, err := client.ListPlayersByLeague(context.Background(), 2023, 271, 2)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if page.CurrentPage != 2 || len(page.Players) != 0 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestClient_NonSuccessStatusIsUpstreamError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"You have exceeded the rate limit per minute for your plan"}`))
	})

	_, err := client.SearchTeams(context.Background(), "Arsenal")
	var statusErr *usecase.UpstreamStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected UpstreamStatusError, got %v", err)
	}
	if statusErr.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", statusErr.Status)
	}
}

func TestClient_ProviderErrorsAreDependencyFailures(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors": {"token": "Error/Missing application key."}, "results": 0, "response": []}`))
	})

	_, err := client.CountLeagues(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClient_TransportFailureIsDependencyFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewClient(ClientConfig{BaseURL: baseURL, APIKey: "secret-key"})
	_, err := client.NextFixtures(context.Background(), 42, 5)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	var statusErr *usecase.UpstreamStatusError
	if errors.As(err, &statusErr) {
		t.Fatalf("transport failure must not carry an upstream status")
	}
}

func TestClient_SearchTeams(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" || r.URL.Query().Get("search") != "Arsenal" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"errors": [], "results": 2, "response": [
			{"team": {"id": 42, "name": "Arsenal", "country": "England", "logo": "https://media.api-sports.io/football/teams/42.png"}, "venue": {"city": "London"}},
			{"team": {"id": 1859, "name": "Arsenal W", "country": "England"}, "venue": {}}
		]}`))
	})

	teams, err := client.SearchTeams(context.Background(), " Arsenal ")
	if err != nil {
		t.Fatalf("search teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected two teams, got=%d", len(teams))
	}
	if teams[0].ExternalID != 42 || teams[0].Name != "Arsenal" || teams[0].Country != "England" {
		t.Fatalf("unexpected first team: %+v", teams[0])
	}
}

func TestClient_NextFixtures(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("team") != "42" || r.URL.Query().Get("next") != "5" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"errors": [], "results": 2, "response": [
			{"fixture": {"id": 2, "date": "2025-03-08T17:30:00+00:00"}, "league": {"name": "FA Cup"}, "teams": {"home": {"id": 50, "name": "Manchester City"}, "away": {"id": 42, "name": "Arsenal"}}},
			{"fixture": {"id": 1, "date": "2025-03-01T15:00:00+00:00"}, "league": {"name": "Premier League"}, "teams": {"home": {"id": 42, "name": "Arsenal"}, "away": {"id": 49, "name": "Chelsea"}}}
		]}`))
	})

	fixtures, err := client.NextFixtures(context.Background(), 42, 5)
	if err != nil {
		t.Fatalf("next fixtures: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected two fixtures, got=%d", len(fixtures))
	}
	if fixtures[0].ExternalID != 1 || fixtures[0].LeagueName != "Premier League" {
		t.Fatalf("expected fixtures ordered by kickoff, got=%+v", fixtures[0])
	}
	if fixtures[0].HomeTeamExternalID != 42 || fixtures[0].AwayTeamName != "Chelsea" {
		t.Fatalf("unexpected sides: %+v", fixtures[0])
	}
	if fixtures[0].KickoffAt.Format("2006-01-02T15:04") != "2025-03-01T15:00" {
		t.Fatalf("unexpected kickoff: %s", fixtures[0].KickoffAt)
	}
}

func TestClient_ListTeamPlayers(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("team") != "42" || r.URL.Query().Get("season") != "2023" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"errors": [], "response": [
			{"player": {"id": 7, "name": "B. Saka", "photo": "https://media.api-sports.io/football/players/7.png"}, "statistics": []}
		]}`))
	})

	players, err := client.ListTeamPlayers(context.Background(), 42, 2023)
	if err != nil {
		t.Fatalf("list team players: %v", err)
	}
	if len(players) != 1 || players[0].PhotoURL != "https://media.api-sports.io/football/players/7.png" {
		t.Fatalf("unexpected players: %+v", players)
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText(`Get "https://host/players?key=secret-key": dial tcp`, "secret-key")
	if got != `Get "https://host/players?key=REDACTED": dial tcp` {
		t.Fatalf("unexpected sanitized text: %s", got)
	}
}
