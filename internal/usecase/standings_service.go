package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/solvik/vollur/internal/domain/standing"
	"github.com/solvik/vollur/internal/domain/team"
	"github.com/solvik/vollur/internal/platform/logging"
	"github.com/solvik/vollur/internal/scrape"
)

type StandingsSyncService struct {
	fetcher      pageFetcher
	urls         scrape.URLs
	standingRepo standing.Repository
	teamRepo     team.Repository
	dryRun       bool
	logger       *logging.Logger
}

func NewStandingsSyncService(
	fetcher pageFetcher,
	urls scrape.URLs,
	standingRepo standing.Repository,
	teamRepo team.Repository,
	dryRun bool,
	logger *logging.Logger,
) *StandingsSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsSyncService{
		fetcher:      fetcher,
		urls:         urls,
		standingRepo: standingRepo,
		teamRepo:     teamRepo,
		dryRun:       dryRun,
		logger:       logger,
	}
}

type StandingsResult struct {
	CompetitionID int64
	SeasonYear    int
	Tables        int
	Rows          int
}

// SyncStandings fetches the standings page and replaces every recognized
// table wholesale. Group-stage competitions render several tables on one
// page; each replaces its own table index.
func (s *StandingsSyncService) SyncStandings(ctx context.Context, competitionID int64, seasonYear int, seasonID int64) (StandingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsSyncService.SyncStandings")
	defer span.End()

	if competitionID <= 0 {
		return StandingsResult{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if seasonYear <= 0 {
		return StandingsResult{}, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}
	if seasonID == 0 {
		seasonID = int64(seasonYear)
	}

	doc, err := s.fetcher.FetchDocument(ctx, s.urls.Standings(competitionID, seasonID))
	if err != nil {
		return StandingsResult{}, fmt.Errorf("fetch standings for competition %d: %w", competitionID, err)
	}

	rows := scrape.ExtractStandings(doc, competitionID, seasonYear)
	result := StandingsResult{CompetitionID: competitionID, SeasonYear: seasonYear, Rows: len(rows)}

	byTable := make(map[int][]standing.Row)
	for _, row := range rows {
		byTable[row.TableIndex] = append(byTable[row.TableIndex], row)
	}
	result.Tables = len(byTable)

	if s.dryRun {
		return result, nil
	}

	teams := make(map[int64]team.Team)
	for _, row := range rows {
		if row.TeamID != nil {
			if _, ok := teams[*row.TeamID]; !ok {
				teams[*row.TeamID] = team.Team{ExternalID: *row.TeamID, Name: row.TeamName}
			}
		}
	}
	if len(teams) > 0 {
		list := make([]team.Team, 0, len(teams))
		for _, t := range teams {
			list = append(list, t)
		}
		if err := s.teamRepo.UpsertBatch(ctx, list, false); err != nil {
			return StandingsResult{}, fmt.Errorf("upsert standings teams: %w", err)
		}
	}

	indices := make([]int, 0, len(byTable))
	for idx := range byTable {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		if err := s.standingRepo.ReplaceTable(ctx, competitionID, seasonYear, idx, byTable[idx]); err != nil {
			return StandingsResult{}, fmt.Errorf("replace standings table %d: %w", idx, err)
		}
	}

	s.logger.InfoContext(ctx, "standings synced",
		"competition_id", competitionID,
		"season_year", seasonYear,
		"tables", result.Tables,
		"rows", result.Rows,
	)
	return result, nil
}
