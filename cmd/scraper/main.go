package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/solvik/vollur/internal/app"
	"github.com/solvik/vollur/internal/config"
	"github.com/solvik/vollur/internal/platform/logging"
	"github.com/solvik/vollur/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("scrape run failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, command string, args []string) error {
	switch command {
	case "discover":
		return runDiscover(ctx, cfg, logger, args)
	case "reports":
		return runReports(ctx, cfg, logger, args)
	case "standings":
		return runStandings(ctx, cfg, logger, args)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

type commonFlags struct {
	season       int
	seasonID     int64
	competitions string
	dryRun       bool
	delay        time.Duration
}

func bindCommonFlags(fs *flag.FlagSet, cfg config.Config) *commonFlags {
	flags := &commonFlags{}
	fs.IntVar(&flags.season, "season", time.Now().Year(), "season year to sync")
	fs.Int64Var(&flags.seasonID, "season-id", 0, "source site season number (defaults to the season year)")
	fs.StringVar(&flags.competitions, "competitions", "", "comma-separated competition ids")
	fs.BoolVar(&flags.dryRun, "dry-run", cfg.DryRun, "parse everything, write nothing")
	fs.DurationVar(&flags.delay, "delay", cfg.RequestDelay, "delay between page fetches")
	return flags
}

func (f *commonFlags) apply(cfg config.Config) config.Config {
	cfg.DryRun = f.dryRun
	cfg.RequestDelay = f.delay
	return cfg
}

func (f *commonFlags) competitionIDs() ([]int64, error) {
	raw := strings.Split(f.competitions, ",")
	ids := make([]int64, 0, len(raw))
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid competition id %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("-competitions is required")
	}
	return ids, nil
}

func runDiscover(ctx context.Context, cfg config.Config, logger *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	flags := bindCommonFlags(fs, cfg)
	maxPages := fs.Int("max-pages", cfg.CrawlMaxPages, "listing page cap per competition")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg = flags.apply(cfg)
	cfg.CrawlMaxPages = *maxPages

	ids, err := flags.competitionIDs()
	if err != nil {
		return err
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = application.Close()
	}()

	var failed int
	for _, id := range ids {
		result, err := application.DiscoveryService.SyncCompetition(ctx, usecase.DiscoveryInput{
			CompetitionID: id,
			SeasonYear:    flags.season,
			SeasonID:      flags.seasonID,
		})
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			failed++
			logger.Warn("competition discovery failed", "competition_id", id, "error", err)
			continue
		}
		logger.Info("competition discovered",
			"competition_id", id,
			"season", flags.season,
			"matches_found", result.MatchesFound,
			"new_matches", result.NewMatches,
		)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d competitions failed", failed, len(ids))
	}
	return nil
}

func runReports(ctx context.Context, cfg config.Config, logger *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)
	flags := bindCommonFlags(fs, cfg)
	matchesCSV := fs.String("matches", "", "comma-separated match ids (overrides -competitions)")
	limit := fs.Int("limit", 0, "stop after this many matches per competition (0 = no limit)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg = flags.apply(cfg)

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = application.Close()
	}()

	var matchIDs []int64
	if strings.TrimSpace(*matchesCSV) != "" {
		matchIDs, err = parseIDList(*matchesCSV)
		if err != nil {
			return err
		}
	} else {
		competitionIDs, err := flags.competitionIDs()
		if err != nil {
			return err
		}
		for _, competitionID := range competitionIDs {
			matches, err := application.AnalysisService.ListMatches(ctx, competitionID, flags.season)
			if err != nil {
				return fmt.Errorf("list matches for competition %d: %w", competitionID, err)
			}
			count := 0
			for _, m := range matches {
				if *limit > 0 && count >= *limit {
					break
				}
				matchIDs = append(matchIDs, m.ExternalID)
				count++
			}
		}
	}
	if len(matchIDs) == 0 {
		logger.Info("no matches to ingest")
		return nil
	}

	run, err := application.IngestionService.IngestReports(ctx, matchIDs)
	if err != nil {
		return err
	}
	logger.Info("report run finished",
		"run_id", run.RunID,
		"processed", run.Processed,
		"failed", run.Failed,
		"skipped", run.Skipped,
		"lineups", run.Lineups,
		"events", run.Events,
	)
	if run.Failed > 0 {
		return fmt.Errorf("run %s: %d of %d match reports failed", run.RunID, run.Failed, len(matchIDs))
	}
	return nil
}

func runStandings(ctx context.Context, cfg config.Config, logger *logging.Logger, args []string) error {
	fs := flag.NewFlagSet("standings", flag.ExitOnError)
	flags := bindCommonFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg = flags.apply(cfg)

	ids, err := flags.competitionIDs()
	if err != nil {
		return err
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = application.Close()
	}()

	var failed int
	for _, id := range ids {
		result, err := application.StandingsService.SyncStandings(ctx, id, flags.season, flags.seasonID)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			failed++
			logger.Warn("standings sync failed", "competition_id", id, "error", err)
			continue
		}
		logger.Info("standings synced",
			"competition_id", id,
			"season", flags.season,
			"tables", result.Tables,
			"rows", result.Rows,
		)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d competitions failed", failed, len(ids))
	}
	return nil
}

func parseIDList(csv string) ([]int64, error) {
	parts := strings.Split(csv, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid match id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printUsage() {
	prog := "scraper"
	fmt.Fprintf(os.Stderr, "usage: %s <discover|reports|standings> [flags]\n", prog)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s discover -season 2025 -competitions 45801\n", prog)
	fmt.Fprintf(os.Stderr, "  %s reports -season 2025 -competitions 45801 -limit 20\n", prog)
	fmt.Fprintf(os.Stderr, "  %s reports -matches 2384956,2384957\n", prog)
	fmt.Fprintf(os.Stderr, "  %s standings -season 2025 -competitions 45801\n", prog)
}
