package httpapi

import (
	"net/http"

	"github.com/israelis-abroad/footballmap/internal/usecase"
)

// playerValuePlaceholder is sent until a market value source exists.
const playerValuePlaceholder = 0

type playerViewDTO struct {
	Name         string  `json:"name"`
	City         string  `json:"city"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	DateOfBirth  *string `json:"date_of_birth"`
	Team         string  `json:"team"`
	Country      string  `json:"country"`
	GamesPlayed  int     `json:"games_played"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	Position     string  `json:"position"`
	PlayerNumber int     `json:"player_number"`
	Image        *string `json:"image"`
	Value        int     `json:"value"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	items, err := h.playerService.ListWithCoordinates(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerViewDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerViewFromLocation(item))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func playerViewFromLocation(item usecase.PlayerLocation) playerViewDTO {
	p := item.Player
	view := playerViewDTO{
		Name:         p.Name,
		City:         p.City,
		Lat:          item.Location.Lat,
		Lng:          item.Location.Lng,
		Team:         p.Team,
		Country:      p.Country,
		GamesPlayed:  p.GamesPlayed,
		Goals:        p.Goals,
		Assists:      p.Assists,
		Position:     p.Position,
		PlayerNumber: p.PlayerNumber,
		Image:        p.ImageURL,
		Value:        playerValuePlaceholder,
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.Format("2006-01-02")
		view.DateOfBirth = &dob
	}
	return view
}
