package app

import (
	"fmt"
	"net/http"

	"github.com/israelis-abroad/footballmap/external/apifootball"
	"github.com/israelis-abroad/footballmap/external/opencage"
	"github.com/israelis-abroad/footballmap/internal/config"
	"github.com/israelis-abroad/footballmap/internal/domain/player"
	"github.com/israelis-abroad/footballmap/internal/infrastructure/repository/memory"
	"github.com/israelis-abroad/footballmap/internal/infrastructure/repository/postgres"
	"github.com/israelis-abroad/footballmap/internal/interfaces/httpapi"
	"github.com/israelis-abroad/footballmap/internal/platform/logging"
	"github.com/israelis-abroad/footballmap/internal/platform/metrics"
	"github.com/israelis-abroad/footballmap/internal/usecase"
)

// NewHTTPServer wires the map API. The returned cleanup closes the store.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	playerRepo, cleanup, err := newPlayerRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
	}

	geocoder := opencage.NewClient(opencage.ClientConfig{
		BaseURL: cfg.OpenCageBaseURL,
		APIKey:  cfg.OpenCageAPIKey,
		Timeout: cfg.OpenCageTimeout,
		Logger:  logger,
		Metrics: recorder,
	})
	football := newFootballClient(cfg, logger, recorder)

	playerSvc := usecase.NewPlayerService(playerRepo, geocoder, logger)
	fixtureSvc := usecase.NewFixtureService(football, usecase.FixtureServiceConfig{
		Enabled:     cfg.UseRapidAPI,
		NextCount:   cfg.NextGamesCount,
		PhotoSeason: cfg.PhotoSeason,
	}, logger)

	handler := httpapi.NewHandler(playerSvc, fixtureSvc, httpapi.PageConfig{NextGamesEnabled: cfg.UseRapidAPI}, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, recorder)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

// Ingest bundles what the ingest command needs.
type Ingest struct {
	Service *usecase.IngestionService
	Teams   *usecase.TeamService
	Players player.Repository
}

// NewIngest wires the ingest job. The returned cleanup closes the store.
func NewIngest(cfg config.Config, logger *logging.Logger) (*Ingest, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	playerRepo, cleanup, err := newPlayerRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	football := newFootballClient(cfg, logger, nil)
	service := usecase.NewIngestionService(football, playerRepo, usecase.IngestionConfig{
		Season:      cfg.Ingest.Season,
		LeagueID:    cfg.Ingest.LeagueID,
		Nationality: cfg.Ingest.Nationality,
		HomeCountry: cfg.Ingest.HomeCountry,
		MaxPages:    cfg.Ingest.MaxPages,
		Probe:       cfg.Ingest.Probe,
	}, logger)

	return &Ingest{
		Service: service,
		Teams:   usecase.NewTeamService(football),
		Players: playerRepo,
	}, cleanup, nil
}

func newFootballClient(cfg config.Config, logger *logging.Logger, recorder *metrics.Recorder) *apifootball.Client {
	return apifootball.NewClient(apifootball.ClientConfig{
		BaseURL: cfg.FootballAPIBaseURL,
		APIKey:  cfg.FootballAPIKey,
		Host:    cfg.FootballAPIHost,
		Timeout: cfg.FootballAPITimeout,
		Logger:  logger,
		Metrics: recorder,
	})
}

func newPlayerRepository(cfg config.Config, logger *logging.Logger) (player.Repository, func(), error) {
	if cfg.StoreBackend == config.StoreBackendMemory {
		logger.Warn("using in-memory player store, rows are lost on exit")
		return memory.NewPlayerRepository(nil), func() {}, nil
	}

	db, err := openPostgres(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database failed", "error", err)
		}
	}

	return postgres.NewPlayerRepository(db), cleanup, nil
}
