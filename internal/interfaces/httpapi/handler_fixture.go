package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/israelis-abroad/footballmap/internal/domain/fixture"
	"github.com/israelis-abroad/footballmap/internal/usecase"
)

const msgNoUpcomingGames = "No upcoming games found for this team"

type nextGamesDTO struct {
	Message   string           `json:"message,omitempty"`
	TeamName  string           `json:"team_name"`
	NextGames []fixtureViewDTO `json:"next_games"`
}

type fixtureViewDTO struct {
	League        string `json:"league"`
	HomeTeam      string `json:"home_team"`
	AwayTeam      string `json:"away_team"`
	Date          string `json:"date"`
	HomeTeamImage string `json:"home_team_image"`
	AwayTeamImage string `json:"away_team_image"`
}

func (h *Handler) NextGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NextGames")
	defer span.End()

	teamName := r.PathValue("team_name")
	result, err := h.fixtureService.NextGames(ctx, teamName)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFeatureDisabled):
			h.logger.InfoContext(ctx, "next games rejected, rapidapi disabled", "team_name", teamName)
		case errors.Is(err, usecase.ErrWomenTeamOnly):
			writeErrorMessage(ctx, w, http.StatusNotFound, "Only women's team found")
			return
		case errors.Is(err, usecase.ErrNotFound):
			writeErrorMessage(ctx, w, http.StatusNotFound, "Team not found")
			return
		default:
			h.logger.WarnContext(ctx, "next games failed", "team_name", teamName, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	out := nextGamesDTO{
		TeamName:  result.TeamName,
		NextGames: make([]fixtureViewDTO, 0, len(result.Games)),
	}
	if len(result.Games) == 0 {
		out.Message = msgNoUpcomingGames
	}
	for _, item := range result.Games {
		out.NextGames = append(out.NextGames, fixtureViewFromSummary(item))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func fixtureViewFromSummary(item fixture.Summary) fixtureViewDTO {
	date := ""
	if !item.KickoffAt.IsZero() {
		date = item.KickoffAt.UTC().Format(time.RFC3339)
	}
	return fixtureViewDTO{
		League:        item.League,
		HomeTeam:      item.HomeTeam,
		AwayTeam:      item.AwayTeam,
		Date:          date,
		HomeTeamImage: item.HomeImage,
		AwayTeamImage: item.AwayImage,
	}
}
