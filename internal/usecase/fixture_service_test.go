package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

type stubFixtureProvider struct {
	teams       []ExternalTeam
	searchErr   error
	fixtures    []ExternalFixture
	fixturesErr error
	squads      map[int64][]ExternalSquadPlayer
	squadErr    map[int64]error

	searchCalls  int
	fixtureCalls int
	squadCalls   int
	lastCount    int
	lastTeamID   int64
}

func (s *stubFixtureProvider) SearchTeams(context.Context, string) ([]ExternalTeam, error) {
	s.searchCalls++
	return s.teams, s.searchErr
}

func (s *stubFixtureProvider) NextFixtures(_ context.Context, teamID int64, count int) ([]ExternalFixture, error) {
	s.fixtureCalls++
	s.lastTeamID = teamID
	s.lastCount = count
	return s.fixtures, s.fixturesErr
}

func (s *stubFixtureProvider) ListTeamPlayers(_ context.Context, teamID int64, _ int) ([]ExternalSquadPlayer, error) {
	s.squadCalls++
	if err := s.squadErr[teamID]; err != nil {
		return nil, err
	}
	return s.squads[teamID], nil
}

func (s *stubFixtureProvider) totalCalls() int {
	return s.searchCalls + s.fixtureCalls + s.squadCalls
}

func enabledFixtureConfig() FixtureServiceConfig {
	return FixtureServiceConfig{Enabled: true, NextCount: 5, PhotoSeason: 2023}
}

func TestFixtureService_NextGames_FeatureGateMakesNoCalls(t *testing.T) {
	t.Parallel()

	provider := &stubFixtureProvider{teams: []ExternalTeam{{ExternalID: 42, Name: "Arsenal"}}}
	service := NewFixtureService(provider, FixtureServiceConfig{Enabled: false}, nil)

	_, err := service.NextGames(context.Background(), "Arsenal")
	if !errors.Is(err, ErrFeatureDisabled) {
		t.Fatalf("expected ErrFeatureDisabled, got %v", err)
	}
	if provider.totalCalls() != 0 {
		t.Fatalf("expected zero provider calls, got=%d", provider.totalCalls())
	}
}

func TestResolveTeam_SkipsWomenTeams(t *testing.T) {
	t.Parallel()

	got, err := ResolveTeam([]ExternalTeam{{ExternalID: 42, Name: "Arsenal"}, {ExternalID: 43, Name: "Arsenal Women"}})
	if err != nil {
		t.Fatalf("resolve team: %v", err)
	}
	if got.Name != "Arsenal" {
		t.Fatalf("expected Arsenal, got=%s", got.Name)
	}

	got, err = ResolveTeam([]ExternalTeam{{ExternalID: 43, Name: "Arsenal Women"}, {ExternalID: 42, Name: "Arsenal"}})
	if err != nil || got.ExternalID != 42 {
		t.Fatalf("expected men's team after women's entry, got=%+v err=%v", got, err)
	}

	_, err = ResolveTeam([]ExternalTeam{{ExternalID: 43, Name: "Arsenal Women"}})
	if !errors.Is(err, ErrWomenTeamOnly) {
		t.Fatalf("expected ErrWomenTeamOnly, got %v", err)
	}
}

func TestResolveTeam_LetterWIsRejected(t *testing.T) {
	t.Parallel()

	_, err := ResolveTeam([]ExternalTeam{{ExternalID: 1, Name: "Wolves"}, {ExternalID: 2, Name: "Newcastle"}})
	if !errors.Is(err, ErrWomenTeamOnly) {
		t.Fatalf("expected names containing w to be rejected, got %v", err)
	}
}

func TestFixtureService_NextGames_TeamNotFound(t *testing.T) {
	t.Parallel()

	provider := &stubFixtureProvider{}
	_, err := NewFixtureService(provider, enabledFixtureConfig(), nil).NextGames(context.Background(), "Nowhere United")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if provider.fixtureCalls != 0 {
		t.Fatalf("expected no fixture lookup")
	}
}

func TestFixtureService_NextGames_WomenOnly(t *testing.T) {
	t.Parallel()

	provider := &stubFixtureProvider{teams: []ExternalTeam{{ExternalID: 43, Name: "Arsenal Women"}}}
	_, err := NewFixtureService(provider, enabledFixtureConfig(), nil).NextGames(context.Background(), "Arsenal")
	if !errors.Is(err, ErrWomenTeamOnly) {
		t.Fatalf("expected ErrWomenTeamOnly, got %v", err)
	}
}

func TestFixtureService_NextGames_UpstreamStatusPassesThrough(t *testing.T) {
	t.Parallel()

	provider := &stubFixtureProvider{searchErr: &UpstreamStatusError{Status: http.StatusTooManyRequests}}
	_, err := NewFixtureService(provider, enabledFixtureConfig(), nil).NextGames(context.Background(), "Arsenal")
	status, ok := UpstreamStatus(err)
	if !ok || status != http.StatusTooManyRequests {
		t.Fatalf("expected upstream 429, got status=%d ok=%v err=%v", status, ok, err)
	}

	provider = &stubFixtureProvider{
		teams:       []ExternalTeam{{ExternalID: 42, Name: "Arsenal"}},
		fixturesErr: &UpstreamStatusError{Status: http.StatusForbidden},
	}
	_, err = NewFixtureService(provider, enabledFixtureConfig(), nil).NextGames(context.Background(), "Arsenal")
	if status, ok := UpstreamStatus(err); !ok || status != http.StatusForbidden {
		t.Fatalf("expected upstream 403, got status=%d ok=%v err=%v", status, ok, err)
	}
}

func TestFixtureService_NextGames_EmptyFixturesIsNotAnError(t *testing.T) {
	t.Parallel()

	provider := &stubFixtureProvider{teams: []ExternalTeam{{ExternalID: 42, Name: "Arsenal"}}}
	got, err := NewFixtureService(provider, enabledFixtureConfig(), nil).NextGames(context.Background(), "arsenal")
	if err != nil {
		t.Fatalf("next games: %v", err)
	}
	if got.TeamName != "Arsenal" {
		t.Fatalf("expected resolved display name, got=%s", got.TeamName)
	}
	if got.Games == nil || len(got.Games) != 0 {
		t.Fatalf("expected empty non-nil games, got=%v", got.Games)
	}
	if provider.squadCalls != 0 {
		t.Fatalf("expected no photo lookups, got=%d", provider.squadCalls)
	}
}

func TestFixtureService_NextGames_EnrichesPhotosBestEffort(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	provider := &stubFixtureProvider{
		teams: []ExternalTeam{{ExternalID: 42, Name: "Arsenal"}},
		fixtures: []ExternalFixture{
			{ExternalID: 1, LeagueName: "Premier League", KickoffAt: kickoff, HomeTeamExternalID: 42, HomeTeamName: "Arsenal", AwayTeamExternalID: 49, AwayTeamName: "Chelsea"},
			{ExternalID: 2, LeagueName: "FA Cup", KickoffAt: kickoff.Add(72 * time.Hour), HomeTeamExternalID: 50, HomeTeamName: "Man City", AwayTeamExternalID: 42, AwayTeamName: "Arsenal"},
		},
		squads: map[int64][]ExternalSquadPlayer{
			42: {{ExternalID: 1, PhotoURL: "https://img/arsenal-1.png"}, {ExternalID: 2, PhotoURL: "https://img/arsenal-2.png"}},
			50: {},
		},
		squadErr: map[int64]error{49: &UpstreamStatusError{Status: http.StatusInternalServerError}},
	}

	got, err := NewFixtureService(provider, FixtureServiceConfig{Enabled: true}, nil).NextGames(context.Background(), "Arsenal")
	if err != nil {
		t.Fatalf("next games: %v", err)
	}
	if provider.lastTeamID != 42 || provider.lastCount != defaultNextGamesCount {
		t.Fatalf("unexpected fixture query team=%d count=%d", provider.lastTeamID, provider.lastCount)
	}
	if provider.squadCalls != 4 {
		t.Fatalf("expected two photo lookups per fixture, got=%d", provider.squadCalls)
	}
	if len(got.Games) != 2 {
		t.Fatalf("expected two games, got=%d", len(got.Games))
	}
	first := got.Games[0]
	if first.League != "Premier League" || !first.KickoffAt.Equal(kickoff) {
		t.Fatalf("unexpected first game: %+v", first)
	}
	if first.HomeImage != "https://img/arsenal-1.png" {
		t.Fatalf("expected first squad photo, got=%s", first.HomeImage)
	}
	if first.AwayImage != "" {
		t.Fatalf("expected empty image on failed lookup, got=%s", first.AwayImage)
	}
	if got.Games[1].HomeImage != "" {
		t.Fatalf("expected empty image for empty squad, got=%s", got.Games[1].HomeImage)
	}
}
