package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/israelis-abroad/footballmap/internal/domain/fixture"
	"github.com/israelis-abroad/footballmap/internal/platform/logging"
)

const defaultNextGamesCount = 5

type FixtureServiceConfig struct {
	// Enabled is the USE_RAPIDAPI gate. When false no provider call is made.
	Enabled     bool
	NextCount   int
	PhotoSeason int
}

type FixtureService struct {
	provider FixtureProvider
	cfg      FixtureServiceConfig
	logger   *logging.Logger
}

func NewFixtureService(provider FixtureProvider, cfg FixtureServiceConfig, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.NextCount <= 0 {
		cfg.NextCount = defaultNextGamesCount
	}
	return &FixtureService{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// NextGames resolves teamName to a men's team and lists its upcoming fixtures
// with a representative player photo for each side. An empty Games slice is a
// valid result.
func (s *FixtureService) NextGames(ctx context.Context, teamName string) (fixture.NextGames, error) {
	if !s.cfg.Enabled {
		return fixture.NextGames{}, fmt.Errorf("%w: RapidAPI usage is disabled", ErrFeatureDisabled)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.NextGames")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return fixture.NextGames{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	candidates, err := s.provider.SearchTeams(ctx, teamName)
	if err != nil {
		return fixture.NextGames{}, fmt.Errorf("search teams name=%s: %w", teamName, err)
	}
	if len(candidates) == 0 {
		return fixture.NextGames{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamName)
	}

	team, err := ResolveTeam(candidates)
	if err != nil {
		return fixture.NextGames{}, fmt.Errorf("resolve team name=%s: %w", teamName, err)
	}

	fixtures, err := s.provider.NextFixtures(ctx, team.ExternalID, s.cfg.NextCount)
	if err != nil {
		return fixture.NextGames{}, fmt.Errorf("next fixtures team_id=%d: %w", team.ExternalID, err)
	}

	out := fixture.NextGames{
		TeamName: team.Name,
		Games:    make([]fixture.Summary, 0, len(fixtures)),
	}
	for _, item := range fixtures {
		out.Games = append(out.Games, fixture.Summary{
			League:    item.LeagueName,
			HomeTeam:  item.HomeTeamName,
			AwayTeam:  item.AwayTeamName,
			KickoffAt: item.KickoffAt,
			HomeImage: s.representativeImage(ctx, item.HomeTeamExternalID),
			AwayImage: s.representativeImage(ctx, item.AwayTeamExternalID),
		})
	}

	return out, nil
}

// ResolveTeam picks the first candidate whose lower-cased name contains
// neither "women" nor the letter "w".
func ResolveTeam(candidates []ExternalTeam) (ExternalTeam, error) {
	if len(candidates) == 0 {
		return ExternalTeam{}, ErrNotFound
	}
	for _, candidate := range candidates {
		name := strings.ToLower(candidate.Name)
		if strings.Contains(name, "women") || strings.Contains(name, "w") {
			continue
		}
		return candidate, nil
	}
	return ExternalTeam{}, ErrWomenTeamOnly
}

func (s *FixtureService) representativeImage(ctx context.Context, teamID int64) string {
	if teamID <= 0 {
		return ""
	}
	players, err := s.provider.ListTeamPlayers(ctx, teamID, s.cfg.PhotoSeason)
	if err != nil {
		s.logger.WarnContext(ctx, "lookup team photo failed", "team_id", teamID, "error", err)
		return ""
	}
	if len(players) == 0 {
		return ""
	}
	return players[0].PhotoURL
}
