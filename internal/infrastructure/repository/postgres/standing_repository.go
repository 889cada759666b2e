package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/solvik/vollur/internal/domain/standing"
	qb "github.com/solvik/vollur/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

// ReplaceTable deletes the stored table scoped by its parent key and
// re-inserts the fresh rows. Rank order is only meaningful wholesale, so
// a row-level upsert would let relegated teams linger.
func (r *StandingRepository) ReplaceTable(ctx context.Context, competitionID int64, seasonYear, tableIndex int, rows []standing.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("standing_rows").
		Where(
			qb.Eq("competition_external_id", competitionID),
			qb.Eq("season_year", seasonYear),
			qb.Eq("table_index", tableIndex),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear standings: %w", err)
	}

	for i, row := range rows {
		insertModel := standingRowInsertModel{
			CompetitionExternalID: competitionID,
			SeasonYear:            seasonYear,
			TableIndex:            tableIndex,
			Position:              row.Position,
			TeamExternalID:        row.TeamID,
			TeamName:              row.TeamName,
			Played:                row.Played,
			Wins:                  row.Wins,
			Draws:                 row.Draws,
			Losses:                row.Losses,
			GoalsFor:              row.GoalsFor,
			GoalsAgainst:          row.GoalsAgainst,
			GoalDifference:        row.GoalDifference,
			Points:                row.Points,
		}
		query, args, err := qb.InsertModel("standing_rows", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert standing row query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert standing row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}
	return nil
}

func (r *StandingRepository) ListByCompetition(ctx context.Context, competitionID int64, seasonYear int) ([]standing.Row, error) {
	query, args, err := qb.Select("*").From("standing_rows").
		Where(
			qb.Eq("competition_external_id", competitionID),
			qb.Eq("season_year", seasonYear),
		).
		OrderBy("table_index", "position NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingRowTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Row{
			CompetitionID:  row.CompetitionExternalID,
			SeasonYear:     row.SeasonYear,
			TableIndex:     row.TableIndex,
			Position:       row.Position,
			TeamID:         row.TeamExternalID,
			TeamName:       row.TeamName,
			Played:         row.Played,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return out, nil
}
