package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/israelis-abroad/footballmap/internal/domain/player"
	"github.com/israelis-abroad/footballmap/internal/platform/logging"
)

type IngestionConfig struct {
	Season      int
	LeagueID    int
	Nationality string
	HomeCountry string
	MaxPages    int
	Probe       bool
}

// IngestionResult summarises one run. Written is the number of rows upserted.
type IngestionResult struct {
	Pages   int
	Fetched int
	Matched int
	Skipped int
	Invalid int
	Written int
}

type IngestionService struct {
	provider PlayerFeedProvider
	repo     player.Repository
	cfg      IngestionConfig
	validate *validator.Validate
	logger   *logging.Logger
	now      func() time.Time
}

func NewIngestionService(provider PlayerFeedProvider, repo player.Repository, cfg IngestionConfig, logger *logging.Logger) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 1
	}
	cfg.Nationality = strings.TrimSpace(cfg.Nationality)
	cfg.HomeCountry = strings.TrimSpace(cfg.HomeCountry)

	return &IngestionService{
		provider: provider,
		repo:     repo,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run pulls the configured season/league, keeps players of the target
// nationality who play for a club outside the home country, and upserts them.
// A provider or storage failure aborts the run; per-player gaps are skipped.
func (s *IngestionService) Run(ctx context.Context) (IngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Run")
	defer span.End()

	if s.cfg.Season <= 0 || s.cfg.LeagueID <= 0 {
		return IngestionResult{}, fmt.Errorf("%w: season and league id are required", ErrInvalidInput)
	}
	if s.cfg.Nationality == "" || s.cfg.HomeCountry == "" {
		return IngestionResult{}, fmt.Errorf("%w: nationality and home country are required", ErrInvalidInput)
	}

	if s.cfg.Probe {
		s.probe(ctx)
	}

	records, result, err := s.collect(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch players failed, aborting ingestion",
			"season", s.cfg.Season,
			"league_id", s.cfg.LeagueID,
			"error", err,
		)
		return IngestionResult{}, err
	}

	for _, record := range records {
		if err := s.repo.Upsert(ctx, record); err != nil {
			s.logger.ErrorContext(ctx, "upsert player failed, aborting ingestion",
				"player_id", record.ExternalID,
				"written", result.Written,
				"error", err,
			)
			return result, fmt.Errorf("upsert player id=%s: %w", record.ExternalID, err)
		}
		result.Written++
	}

	s.logger.InfoContext(ctx, "ingestion finished",
		"season", s.cfg.Season,
		"league_id", s.cfg.LeagueID,
		"pages", result.Pages,
		"fetched", result.Fetched,
		"matched", result.Matched,
		"skipped", result.Skipped,
		"invalid", result.Invalid,
		"written", result.Written,
	)
	return result, nil
}

func (s *IngestionService) collect(ctx context.Context) ([]player.Player, IngestionResult, error) {
	var result IngestionResult
	records := make([]player.Player, 0, 16)
	now := s.now()

	for page := 1; page <= s.cfg.MaxPages; page++ {
		feed, err := s.provider.ListPlayersByLeague(ctx, s.cfg.Season, s.cfg.LeagueID, page)
		if err != nil {
			return nil, IngestionResult{}, fmt.Errorf("list players season=%d league=%d page=%d: %w", s.cfg.Season, s.cfg.LeagueID, page, err)
		}
		result.Pages++
		result.Fetched += len(feed.Players)

		for _, entry := range feed.Players {
			if entry.Nationality != s.cfg.Nationality {
				continue
			}
			result.Matched++

			stat, ok := SelectAbroadStatistic(entry.Statistics, s.cfg.HomeCountry)
			if !ok {
				result.Skipped++
				s.logger.DebugContext(ctx, "skip player without club abroad",
					"player_id", entry.ExternalID,
					"name", entry.Name,
					"statistics", len(entry.Statistics),
				)
				continue
			}

			record := buildPlayerRecord(entry, stat, now)
			if err := s.validate.StructCtx(ctx, record); err != nil {
				result.Invalid++
				s.logger.WarnContext(ctx, "skip invalid player record",
					"player_id", entry.ExternalID,
					"name", entry.Name,
					"error", err,
				)
				continue
			}
			records = append(records, record)
		}

		if feed.TotalPages <= page {
			break
		}
	}

	return records, result, nil
}

func (s *IngestionService) probe(ctx context.Context) {
	count, err := s.provider.CountLeagues(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "football api probe failed, continuing anyway", "error", err)
		return
	}
	if count == 0 {
		s.logger.WarnContext(ctx, "football api probe returned no leagues, continuing anyway")
		return
	}
	s.logger.InfoContext(ctx, "football api probe ok", "leagues", count)
}

// SelectAbroadStatistic returns the first statistics entry whose club country
// differs from homeCountry (case-insensitive). Entries without a club or a
// country are ignored.
func SelectAbroadStatistic(stats []ExternalPlayerStatistic, homeCountry string) (ExternalPlayerStatistic, bool) {
	home := strings.ToLower(strings.TrimSpace(homeCountry))
	for _, stat := range stats {
		country := strings.TrimSpace(stat.TeamCountry)
		if strings.TrimSpace(stat.TeamName) == "" || country == "" {
			continue
		}
		if strings.ToLower(country) != home {
			return stat, true
		}
	}
	return ExternalPlayerStatistic{}, false
}

func buildPlayerRecord(entry ExternalPlayerEntry, stat ExternalPlayerStatistic, now time.Time) player.Player {
	record := player.Player{
		ExternalID:   strconv.FormatInt(entry.ExternalID, 10),
		Name:         strings.TrimSpace(entry.Name),
		DateOfBirth:  entry.BirthDate,
		Team:         strings.TrimSpace(stat.TeamName),
		Country:      strings.TrimSpace(stat.TeamCountry),
		City:         player.CityOrUnknown(stat.TeamCity),
		GamesPlayed:  intOrZero(stat.Appearances),
		Goals:        intOrZero(stat.Goals),
		Assists:      intOrZero(stat.Assists),
		Position:     strings.TrimSpace(stat.Position),
		PlayerNumber: intOrZero(stat.ShirtNumber),
		LastUpdated:  now,
	}
	if entry.ExternalID <= 0 {
		record.ExternalID = ""
	}
	if photo := strings.TrimSpace(entry.PhotoURL); photo != "" {
		record.ImageURL = &photo
	}
	return record
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
