package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/solvik/vollur/internal/domain/competition"
	"github.com/solvik/vollur/internal/domain/lineup"
	"github.com/solvik/vollur/internal/domain/match"
	"github.com/solvik/vollur/internal/domain/matchevent"
	"github.com/solvik/vollur/internal/domain/standing"
	"github.com/solvik/vollur/internal/domain/team"
	"github.com/solvik/vollur/internal/platform/cache"
)

// AnalysisService is the read side: it aggregates ingested rows into the
// shapes the dashboard serves. Results are cached per key; ingest runs
// are slow enough that a short TTL never serves anything meaningfully
// stale.
type AnalysisService struct {
	competitionRepo competition.Repository
	matchRepo       match.Repository
	standingRepo    standing.Repository
	lineupRepo      lineup.Repository
	eventRepo       matchevent.Repository
	teamRepo        team.Repository
	cache           *cache.Store
}

func NewAnalysisService(
	competitionRepo competition.Repository,
	matchRepo match.Repository,
	standingRepo standing.Repository,
	lineupRepo lineup.Repository,
	eventRepo matchevent.Repository,
	teamRepo team.Repository,
	cacheStore *cache.Store,
) *AnalysisService {
	return &AnalysisService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		standingRepo:    standingRepo,
		lineupRepo:      lineupRepo,
		eventRepo:       eventRepo,
		teamRepo:        teamRepo,
		cache:           cacheStore,
	}
}

func (s *AnalysisService) ListCompetitions(ctx context.Context, seasonYear int) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.ListCompetitions")
	defer span.End()

	if seasonYear <= 0 {
		return nil, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}

	value, err := s.cached(ctx, fmt.Sprintf("competitions:%d", seasonYear), func(ctx context.Context) (any, error) {
		return s.competitionRepo.List(ctx, seasonYear)
	})
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return value.([]competition.Competition), nil
}

func (s *AnalysisService) GetStandings(ctx context.Context, competitionID int64, seasonYear int) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.GetStandings")
	defer span.End()

	if competitionID <= 0 || seasonYear <= 0 {
		return nil, fmt.Errorf("%w: competition id and season year are required", ErrInvalidInput)
	}

	value, err := s.cached(ctx, fmt.Sprintf("standings:%d:%d", competitionID, seasonYear), func(ctx context.Context) (any, error) {
		return s.standingRepo.ListByCompetition(ctx, competitionID, seasonYear)
	})
	if err != nil {
		return nil, fmt.Errorf("get standings: %w", err)
	}
	return value.([]standing.Row), nil
}

func (s *AnalysisService) ListMatches(ctx context.Context, competitionID int64, seasonYear int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.ListMatches")
	defer span.End()

	if competitionID <= 0 || seasonYear <= 0 {
		return nil, fmt.Errorf("%w: competition id and season year are required", ErrInvalidInput)
	}

	value, err := s.cached(ctx, fmt.Sprintf("matches:%d:%d", competitionID, seasonYear), func(ctx context.Context) (any, error) {
		return s.matchRepo.ListByCompetition(ctx, competitionID, seasonYear)
	})
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return value.([]match.Match), nil
}

type TeamSummary struct {
	Team         team.Team
	SeasonYear   int
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	// Form holds result letters for the most recent played matches,
	// oldest first, at most five.
	Form string
}

func (s *AnalysisService) GetTeamSummary(ctx context.Context, teamID int64, seasonYear int) (TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.GetTeamSummary")
	defer span.End()

	if teamID <= 0 || seasonYear <= 0 {
		return TeamSummary{}, fmt.Errorf("%w: team id and season year are required", ErrInvalidInput)
	}

	value, err := s.cached(ctx, fmt.Sprintf("team-summary:%d:%d", teamID, seasonYear), func(ctx context.Context) (any, error) {
		return s.buildTeamSummary(ctx, teamID, seasonYear)
	})
	if err != nil {
		return TeamSummary{}, err
	}
	return value.(TeamSummary), nil
}

func (s *AnalysisService) buildTeamSummary(ctx context.Context, teamID int64, seasonYear int) (TeamSummary, error) {
	t, found, err := s.teamRepo.GetByExternalID(ctx, teamID)
	if err != nil {
		return TeamSummary{}, fmt.Errorf("get team %d: %w", teamID, err)
	}
	if !found {
		return TeamSummary{}, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}

	matches, err := s.matchRepo.ListByTeam(ctx, teamID, seasonYear)
	if err != nil {
		return TeamSummary{}, fmt.Errorf("list matches for team %d: %w", teamID, err)
	}

	summary := TeamSummary{Team: t, SeasonYear: seasonYear}
	var form []string
	for _, m := range matches {
		if !m.Played() {
			continue
		}
		gf, ga := *m.HomeScore, *m.AwayScore
		if m.AwayTeamID != nil && *m.AwayTeamID == teamID {
			gf, ga = ga, gf
		}
		summary.Played++
		summary.GoalsFor += gf
		summary.GoalsAgainst += ga
		switch {
		case gf > ga:
			summary.Wins++
			form = append(form, "W")
		case gf == ga:
			summary.Draws++
			form = append(form, "D")
		default:
			summary.Losses++
			form = append(form, "L")
		}
	}
	if len(form) > 5 {
		form = form[len(form)-5:]
	}
	summary.Form = strings.Join(form, "")

	return summary, nil
}

type MatchAnalysis struct {
	Match  match.Match
	Lineup []lineup.Entry
	Events []matchevent.Event
}

// GetMatchAnalysis loads the roster and timeline of one match in
// parallel; both reads hit distinct tables.
func (s *AnalysisService) GetMatchAnalysis(ctx context.Context, matchID int64) (MatchAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.GetMatchAnalysis")
	defer span.End()

	if matchID <= 0 {
		return MatchAnalysis{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	value, err := s.cached(ctx, fmt.Sprintf("match-analysis:%d", matchID), func(ctx context.Context) (any, error) {
		return s.buildMatchAnalysis(ctx, matchID)
	})
	if err != nil {
		return MatchAnalysis{}, err
	}
	return value.(MatchAnalysis), nil
}

func (s *AnalysisService) buildMatchAnalysis(ctx context.Context, matchID int64) (MatchAnalysis, error) {
	m, found, err := s.matchRepo.GetByExternalID(ctx, matchID)
	if err != nil {
		return MatchAnalysis{}, fmt.Errorf("get match %d: %w", matchID, err)
	}
	if !found {
		return MatchAnalysis{}, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}

	analysis := MatchAnalysis{Match: m}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		entries, err := s.lineupRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list lineup for match %d: %w", matchID, err)
		}
		analysis.Lineup = entries
		return nil
	})
	p.Go(func(ctx context.Context) error {
		events, err := s.eventRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return fmt.Errorf("list events for match %d: %w", matchID, err)
		}
		analysis.Events = events
		return nil
	})
	if err := p.Wait(); err != nil {
		return MatchAnalysis{}, err
	}

	return analysis, nil
}

// InvalidateCompetition drops cached read models after an ingest pass.
func (s *AnalysisService) InvalidateCompetition(ctx context.Context, competitionID int64, seasonYear int) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, fmt.Sprintf("standings:%d:%d", competitionID, seasonYear))
	s.cache.Delete(ctx, fmt.Sprintf("matches:%d:%d", competitionID, seasonYear))
	s.cache.Delete(ctx, fmt.Sprintf("competitions:%d", seasonYear))
	s.cache.DeletePrefix(ctx, "team-summary:")
	s.cache.DeletePrefix(ctx, "match-analysis:")
}

func (s *AnalysisService) cached(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, loader)
}
