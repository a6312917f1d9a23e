package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type TeamService struct {
	provider TeamDirectoryProvider
}

func NewTeamService(provider TeamDirectoryProvider) *TeamService {
	return &TeamService{provider: provider}
}

// ListByLeague returns the provider's teams for a league season ordered by name.
func (s *TeamService) ListByLeague(ctx context.Context, leagueID, season int) ([]ExternalTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByLeague")
	defer span.End()

	if leagueID <= 0 || season <= 0 {
		return nil, fmt.Errorf("%w: league id and season must be greater than zero", ErrInvalidInput)
	}

	teams, err := s.provider.ListTeamsByLeague(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("list teams league=%d season=%d: %w", leagueID, season, err)
	}

	out := make([]ExternalTeam, 0, len(teams))
	for _, item := range teams {
		item.Name = strings.TrimSpace(item.Name)
		if item.ExternalID <= 0 || item.Name == "" {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out, nil
}
