package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/solvik/vollur/internal/domain/lineup"
	"github.com/solvik/vollur/internal/domain/match"
	"github.com/solvik/vollur/internal/domain/matchevent"
	"github.com/solvik/vollur/internal/domain/player"
	"github.com/solvik/vollur/internal/domain/team"
	"github.com/solvik/vollur/internal/platform/logging"
	"github.com/solvik/vollur/internal/scrape"
)

type IngestionConfig struct {
	ChunkSize int
	DryRun    bool
}

// IngestionService turns fetched match pages into persisted rosters and
// timelines. All writes key on the source site's external ids, so
// re-ingesting the same page is a no-op apart from updated_at churn.
type IngestionService struct {
	fetcher    pageFetcher
	urls       scrape.URLs
	matchRepo  match.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
	eventRepo  matchevent.Repository
	cfg        IngestionConfig
	logger     *logging.Logger
}

func NewIngestionService(
	fetcher pageFetcher,
	urls scrape.URLs,
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
	eventRepo matchevent.Repository,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = 250
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		fetcher:    fetcher,
		urls:       urls,
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		eventRepo:  eventRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

type ReportSummary struct {
	MatchID int64
	Lineups int
	Events  int
	Players int
	// Skipped marks a report whose sides could not be resolved; nothing
	// side-scoped was written.
	Skipped bool
}

type RunSummary struct {
	RunID     string
	Processed int
	Failed    int
	Skipped   int
	Lineups   int
	Events    int
}

// IngestMatchReport fetches one report page and persists header, roster
// and timeline. A missing region on the page yields zero records for
// that region, not an error.
func (s *IngestionService) IngestMatchReport(ctx context.Context, matchID int64) (ReportSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestMatchReport")
	defer span.End()

	if matchID <= 0 {
		return ReportSummary{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	stored, found, err := s.matchRepo.GetByExternalID(ctx, matchID)
	if err != nil {
		return ReportSummary{}, fmt.Errorf("get match %d: %w", matchID, err)
	}
	if !found {
		return ReportSummary{}, fmt.Errorf("%w: match %d has not been discovered", ErrNotFound, matchID)
	}

	doc, err := s.fetcher.FetchDocument(ctx, s.urls.MatchReport(matchID))
	if err != nil {
		return ReportSummary{}, fmt.Errorf("fetch report for match %d: %w", matchID, err)
	}

	summary := ReportSummary{MatchID: matchID}

	overview := scrape.ExtractMatchOverview(doc)
	homeID := firstID(overview.HomeTeamID, stored.HomeTeamID)
	awayID := firstID(overview.AwayTeamID, stored.AwayTeamID)

	if err := s.persistHeader(ctx, stored, overview); err != nil {
		return ReportSummary{}, err
	}

	if homeID == nil || awayID == nil {
		// Side attribution is impossible without both team ids; the header
		// still landed, the rest of the report waits for a later pass.
		summary.Skipped = true
		s.logger.WarnContext(ctx, "report skipped, sides unresolved", "match_id", matchID)
		return summary, nil
	}

	players := make(map[int64]player.Player)

	var entries []lineup.Entry
	if region, ok := scrape.Locate(doc, scrape.RegionLineups); ok {
		entries = scrape.ExtractLineups(region, matchID, *homeID, *awayID)
	}
	summary.Lineups = len(entries)
	collectLineupPlayers(players, entries)

	teamByPlayer := make(map[int64]int64, len(entries))
	for _, e := range entries {
		if e.PlayerID != nil {
			teamByPlayer[*e.PlayerID] = e.TeamID
		}
	}

	var events []matchevent.Event
	if region, ok := scrape.Locate(doc, scrape.RegionEvents); ok {
		events = scrape.ExtractEvents(region, matchID, *homeID, *awayID, teamByPlayer)
	}
	summary.Events = len(events)
	collectEventPlayers(players, events)
	summary.Players = len(players)

	if s.cfg.DryRun {
		return summary, nil
	}

	// Players must exist before lineup rows and events reference them.
	if err := s.playerRepo.UpsertBatch(ctx, playerList(players)); err != nil {
		return ReportSummary{}, fmt.Errorf("upsert players for match %d: %w", matchID, err)
	}

	for _, chunk := range chunkLineups(entries, s.cfg.ChunkSize) {
		if err := s.lineupRepo.UpsertBatch(ctx, chunk); err != nil {
			return ReportSummary{}, fmt.Errorf("upsert lineup for match %d: %w", matchID, err)
		}
	}

	if err := s.eventRepo.ReplaceByMatch(ctx, matchID, events); err != nil {
		return ReportSummary{}, fmt.Errorf("replace events for match %d: %w", matchID, err)
	}

	if err := s.backfillSubstitutionMinutes(ctx, matchID, events); err != nil {
		return ReportSummary{}, err
	}

	return summary, nil
}

// IngestReports walks a batch of match ids single-threaded. A failed
// unit is counted and logged, never fatal to the run; only context
// cancellation stops the loop early.
func (s *IngestionService) IngestReports(ctx context.Context, matchIDs []int64) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestReports")
	defer span.End()

	run := RunSummary{RunID: uuid.NewString()}
	for _, id := range matchIDs {
		if err := ctx.Err(); err != nil {
			return run, fmt.Errorf("ingest run %s interrupted: %w", run.RunID, err)
		}

		summary, err := s.IngestMatchReport(ctx, id)
		if err != nil {
			run.Failed++
			s.logger.WarnContext(ctx, "report ingest failed",
				"run_id", run.RunID,
				"match_id", id,
				"error", err,
			)
			continue
		}

		run.Processed++
		if summary.Skipped {
			run.Skipped++
		}
		run.Lineups += summary.Lineups
		run.Events += summary.Events
	}

	s.logger.InfoContext(ctx, "ingest run finished",
		"run_id", run.RunID,
		"processed", run.Processed,
		"failed", run.Failed,
		"skipped", run.Skipped,
		"lineups", run.Lineups,
		"events", run.Events,
	)
	return run, nil
}

func (s *IngestionService) persistHeader(ctx context.Context, stored match.Match, overview scrape.MatchOverview) error {
	if s.cfg.DryRun {
		return nil
	}

	var teams []team.Team
	if overview.HomeTeamID != nil {
		teams = append(teams, team.Team{ExternalID: *overview.HomeTeamID, Name: overview.HomeTeamName})
	}
	if overview.AwayTeamID != nil {
		teams = append(teams, team.Team{ExternalID: *overview.AwayTeamID, Name: overview.AwayTeamName})
	}
	if len(teams) > 0 {
		if err := s.teamRepo.UpsertBatch(ctx, teams, false); err != nil {
			return fmt.Errorf("upsert teams for match %d: %w", stored.ExternalID, err)
		}
	}

	enriched := stored
	if overview.KickoffAt != nil {
		enriched.KickoffAt = overview.KickoffAt
	}
	if overview.Venue != "" {
		enriched.Venue = overview.Venue
	}
	if overview.HomeTeamID != nil {
		enriched.HomeTeamID = overview.HomeTeamID
	}
	if overview.AwayTeamID != nil {
		enriched.AwayTeamID = overview.AwayTeamID
	}
	if overview.HomeScore != nil && overview.AwayScore != nil {
		enriched.HomeScore = overview.HomeScore
		enriched.AwayScore = overview.AwayScore
	}

	if err := s.matchRepo.UpsertBatch(ctx, []match.Match{enriched}); err != nil {
		return fmt.Errorf("enrich match %d: %w", stored.ExternalID, err)
	}
	return nil
}

// backfillSubstitutionMinutes writes sub minutes onto roster rows that
// do not have one yet; an existing minute is never touched.
func (s *IngestionService) backfillSubstitutionMinutes(ctx context.Context, matchID int64, events []matchevent.Event) error {
	for _, ev := range events {
		if ev.Type != matchevent.TypeSubstitution {
			continue
		}
		if ev.InPlayerID != nil {
			if err := s.lineupRepo.SetMinuteInIfNull(ctx, matchID, *ev.InPlayerID, ev.Minute); err != nil {
				return fmt.Errorf("backfill minute in match=%d player=%d: %w", matchID, *ev.InPlayerID, err)
			}
		}
		if ev.OutPlayerID != nil {
			if err := s.lineupRepo.SetMinuteOutIfNull(ctx, matchID, *ev.OutPlayerID, ev.Minute); err != nil {
				return fmt.Errorf("backfill minute out match=%d player=%d: %w", matchID, *ev.OutPlayerID, err)
			}
		}
	}
	return nil
}

func collectLineupPlayers(into map[int64]player.Player, entries []lineup.Entry) {
	for _, e := range entries {
		if e.PlayerID == nil {
			continue
		}
		if _, ok := into[*e.PlayerID]; !ok {
			into[*e.PlayerID] = player.Player{ExternalID: *e.PlayerID, Name: e.Name}
		}
	}
}

func collectEventPlayers(into map[int64]player.Player, events []matchevent.Event) {
	add := func(id *int64, name string) {
		if id == nil {
			return
		}
		if _, ok := into[*id]; !ok {
			into[*id] = player.Player{ExternalID: *id, Name: name}
		}
	}
	for _, ev := range events {
		add(ev.PlayerID, ev.PlayerName)
		add(ev.InPlayerID, ev.InPlayerName)
		add(ev.OutPlayerID, ev.OutPlayerName)
	}
}

func playerList(players map[int64]player.Player) []player.Player {
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		out = append(out, p)
	}
	return out
}

func chunkLineups(items []lineup.Entry, size int) [][]lineup.Entry {
	if len(items) == 0 {
		return nil
	}
	var out [][]lineup.Entry
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}

func firstID(candidates ...*int64) *int64 {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
