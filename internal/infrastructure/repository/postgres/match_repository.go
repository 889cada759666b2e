package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/solvik/vollur/internal/domain/match"
	qb "github.com/solvik/vollur/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// UpsertBatch inserts or enriches matches. Discovery passes only carry
// ids, so nullable fields never overwrite an already-enriched row with
// NULL; the COALESCE keeps the stored value.
func (r *MatchRepository) UpsertBatch(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := matchInsertModel{
			ExternalID:            item.ExternalID,
			CompetitionExternalID: item.CompetitionID,
			SeasonYear:            item.SeasonYear,
			KickoffAt:             item.KickoffAt,
			Venue:                 item.Venue,
			HomeTeamID:            item.HomeTeamID,
			AwayTeamID:            item.AwayTeamID,
			HomeScore:             item.HomeScore,
			AwayScore:             item.AwayScore,
		}
		query, args, err := qb.InsertModel("matches", insertModel, `ON CONFLICT (external_id)
DO UPDATE SET
    competition_external_id = EXCLUDED.competition_external_id,
    season_year = EXCLUDED.season_year,
    kickoff_at = COALESCE(EXCLUDED.kickoff_at, matches.kickoff_at),
    venue = CASE WHEN EXCLUDED.venue <> '' THEN EXCLUDED.venue ELSE matches.venue END,
    home_team_external_id = COALESCE(EXCLUDED.home_team_external_id, matches.home_team_external_id),
    away_team_external_id = COALESCE(EXCLUDED.away_team_external_id, matches.away_team_external_id),
    home_score = COALESCE(EXCLUDED.home_score, matches.home_score),
    away_score = COALESCE(EXCLUDED.away_score, matches.away_score),
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert match %d: %w", item.ExternalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert matches tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) GetByExternalID(ctx context.Context, externalID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match %d: %w", externalID, err)
	}

	return matchFromTable(row), true, nil
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionID int64, seasonYear int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("competition_external_id", competitionID),
			qb.Eq("season_year", seasonYear),
		).
		OrderBy("kickoff_at NULLS LAST", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromTable(row))
	}
	return out, nil
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID int64, seasonYear int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Expr("(home_team_external_id = ? OR away_team_external_id = ?)", teamID, teamID),
			qb.Eq("season_year", seasonYear),
		).
		OrderBy("kickoff_at NULLS LAST", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromTable(row))
	}
	return out, nil
}

func (r *MatchRepository) ListExternalIDs(ctx context.Context, competitionID int64, seasonYear int) ([]int64, error) {
	query, args, err := qb.Select("external_id").From("matches").
		Where(
			qb.Eq("competition_external_id", competitionID),
			qb.Eq("season_year", seasonYear),
		).
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match ids query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list match ids: %w", err)
	}
	return ids, nil
}

func matchFromTable(row matchTableModel) match.Match {
	return match.Match{
		ExternalID:    row.ExternalID,
		CompetitionID: row.CompetitionExternalID,
		SeasonYear:    row.SeasonYear,
		KickoffAt:     row.KickoffAt,
		Venue:         row.Venue,
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		HomeScore:     row.HomeScore,
		AwayScore:     row.AwayScore,
	}
}
