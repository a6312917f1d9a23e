package usecase

import (
	"context"
	"time"

	"github.com/israelis-abroad/footballmap/internal/domain/geo"
)

// PlayerFeedProvider is the part of the football API the ingest job reads.
type PlayerFeedProvider interface {
	ListPlayersByLeague(ctx context.Context, season, leagueID, page int) (ExternalPlayerPage, error)
	CountLeagues(ctx context.Context) (int, error)
}

// FixtureProvider is the part of the football API behind the next games endpoint.
type FixtureProvider interface {
	SearchTeams(ctx context.Context, name string) ([]ExternalTeam, error)
	NextFixtures(ctx context.Context, teamID int64, count int) ([]ExternalFixture, error)
	ListTeamPlayers(ctx context.Context, teamID int64, season int) ([]ExternalSquadPlayer, error)
}

type TeamDirectoryProvider interface {
	ListTeamsByLeague(ctx context.Context, leagueID, season int) ([]ExternalTeam, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) geo.Result
}

type ExternalPlayerPage struct {
	Players     []ExternalPlayerEntry
	CurrentPage int
	TotalPages  int
}

type ExternalPlayerEntry struct {
	ExternalID  int64
	Name        string
	Nationality string
	BirthDate   *time.Time
	PhotoURL    string
	Statistics  []ExternalPlayerStatistic
}

// ExternalPlayerStatistic is one per-team statistics block of a player.
// Nil counters mean the provider sent null.
type ExternalPlayerStatistic struct {
	TeamExternalID int64
	TeamName       string
	TeamCountry    string
	TeamCity       string
	Appearances    *int
	Goals          *int
	Assists        *int
	Position       string
	ShirtNumber    *int
}

type ExternalTeam struct {
	ExternalID int64
	Name       string
	Country    string
	LogoURL    string
}

type ExternalFixture struct {
	ExternalID         int64
	LeagueName         string
	KickoffAt          time.Time
	HomeTeamExternalID int64
	HomeTeamName       string
	AwayTeamExternalID int64
	AwayTeamName       string
}

type ExternalSquadPlayer struct {
	ExternalID int64
	Name       string
	PhotoURL   string
}
