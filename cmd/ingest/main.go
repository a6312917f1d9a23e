package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/israelis-abroad/footballmap/internal/app"
	"github.com/israelis-abroad/footballmap/internal/config"
	"github.com/israelis-abroad/footballmap/internal/observability"
	"github.com/israelis-abroad/footballmap/internal/platform/logging"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName+"-ingest")
	logging.SetDefault(logger)

	os.Exit(run(cfg, logger, os.Args[1:]))
}

func run(cfg config.Config, logger *logging.Logger, args []string) int {
	defer func() { _ = logger.Sync() }()

	cmd := "run"
	if len(args) > 0 {
		cmd = strings.ToLower(strings.TrimSpace(args[0]))
		args = args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	ingest, cleanup, err := app.NewIngest(cfg, logger)
	if err != nil {
		logger.Error("build ingest", "error", err)
		return 1
	}
	defer cleanup()

	switch cmd {
	case "run":
		return runIngestion(ctx, ingest, logger)
	case "teams":
		return listTeams(ctx, ingest, cfg, logger, args)
	default:
		printUsage()
		return 2
	}
}

func runIngestion(ctx context.Context, ingest *app.Ingest, logger *logging.Logger) int {
	result, err := ingest.Service.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "written", result.Written, "error", err)
		return 1
	}

	total, err := ingest.Players.Count(ctx)
	if err != nil {
		logger.WarnContext(ctx, "count stored players failed", "error", err)
		total = -1
	}
	fmt.Printf("players written: %d\n", result.Written)
	fmt.Printf("players stored: %d\n", total)
	return 0
}

func listTeams(ctx context.Context, ingest *app.Ingest, cfg config.Config, logger *logging.Logger, args []string) int {
	fs := flag.NewFlagSet("teams", flag.ContinueOnError)
	leagueID := fs.Int("league", cfg.Ingest.LeagueID, "league id")
	season := fs.Int("season", cfg.Ingest.Season, "season year")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	teams, err := ingest.Teams.ListByLeague(ctx, *leagueID, *season)
	if err != nil {
		logger.ErrorContext(ctx, "list teams failed", "league_id", *leagueID, "season", *season, "error", err)
		return 1
	}
	for _, team := range teams {
		fmt.Printf("%d\t%s\t%s\n", team.ExternalID, team.Name, team.Country)
	}
	return 0
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s [run|teams] [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s run\n", name)
	fmt.Fprintf(os.Stderr, "  %s teams -league 78 -season 2024\n", name)
}
