package usecase

import (
	"context"
	"fmt"

	"github.com/israelis-abroad/footballmap/internal/domain/geo"
	"github.com/israelis-abroad/footballmap/internal/domain/player"
	"github.com/israelis-abroad/footballmap/internal/platform/logging"
)

// PlayerLocation is a stored player with the coordinates of its club city.
type PlayerLocation struct {
	Player   player.Player
	Location geo.Point
}

type PlayerService struct {
	playerRepo player.Repository
	geocoder   Geocoder
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, geocoder Geocoder, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		playerRepo: playerRepo,
		geocoder:   geocoder,
		logger:     logger,
	}
}

// ListWithCoordinates returns every stored player, geocoding each city in
// order. A failed lookup yields the zero coordinate; only a storage error
// fails the call.
func (s *PlayerService) ListWithCoordinates(ctx context.Context) ([]PlayerLocation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListWithCoordinates")
	defer span.End()

	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]PlayerLocation, 0, len(players))
	for _, item := range players {
		result := s.geocoder.Geocode(ctx, item.City)
		if !result.OK {
			if result.Err != nil {
				s.logger.WarnContext(ctx, "geocode city failed, using zero coordinate",
					"player_id", item.ExternalID,
					"city", item.City,
					"error", result.Err,
				)
			} else {
				s.logger.DebugContext(ctx, "geocode city returned no result, using zero coordinate",
					"player_id", item.ExternalID,
					"city", item.City,
				)
			}
			result.Point = geo.Point{}
		}
		out = append(out, PlayerLocation{Player: item, Location: result.Point})
	}

	return out, nil
}
