package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/solvik/vollur/internal/domain/lineup"
	qb "github.com/solvik/vollur/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) UpsertBatch(ctx context.Context, items []lineup.Entry) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert lineup entries: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := lineupEntryInsertModel{
			MatchExternalID:  item.MatchID,
			Side:             string(item.Side),
			Squad:            string(item.Squad),
			SlotIndex:        item.SlotIndex,
			TeamExternalID:   item.TeamID,
			PlayerExternalID: item.PlayerID,
			PlayerName:       item.Name,
			ShirtNumber:      item.ShirtNumber,
			Goalkeeper:       item.Goalkeeper,
			MinuteIn:         item.MinuteIn,
			MinuteOut:        item.MinuteOut,
		}
		// Substitution minutes are backfilled from events after the roster
		// lands; a re-parse must not wipe them.
		query, args, err := qb.InsertModel("lineup_entries", insertModel, `ON CONFLICT (match_external_id, side, squad, slot_index)
DO UPDATE SET
    team_external_id = EXCLUDED.team_external_id,
    player_external_id = EXCLUDED.player_external_id,
    player_name = EXCLUDED.player_name,
    shirt_number = EXCLUDED.shirt_number,
    is_goalkeeper = EXCLUDED.is_goalkeeper,
    minute_in = COALESCE(EXCLUDED.minute_in, lineup_entries.minute_in),
    minute_out = COALESCE(EXCLUDED.minute_out, lineup_entries.minute_out),
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert lineup entry query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert lineup entry match=%d slot=%d: %w", item.MatchID, item.SlotIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert lineup entries tx: %w", err)
	}
	return nil
}

func (r *LineupRepository) ListByMatch(ctx context.Context, matchID int64) ([]lineup.Entry, error) {
	query, args, err := qb.Select("*").From("lineup_entries").
		Where(qb.Eq("match_external_id", matchID)).
		OrderBy("slot_index").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineup entries query: %w", err)
	}

	var rows []lineupEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineup entries: %w", err)
	}

	out := make([]lineup.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineup.Entry{
			MatchID:     row.MatchExternalID,
			Side:        lineup.Side(row.Side),
			Squad:       lineup.Squad(row.Squad),
			SlotIndex:   row.SlotIndex,
			TeamID:      row.TeamExternalID,
			PlayerID:    row.PlayerExternalID,
			Name:        row.PlayerName,
			ShirtNumber: row.ShirtNumber,
			Goalkeeper:  row.Goalkeeper,
			MinuteIn:    row.MinuteIn,
			MinuteOut:   row.MinuteOut,
		})
	}
	return out, nil
}

func (r *LineupRepository) SetMinuteInIfNull(ctx context.Context, matchID, playerID int64, minute int) error {
	return r.setMinuteIfNull(ctx, "minute_in", matchID, playerID, minute)
}

func (r *LineupRepository) SetMinuteOutIfNull(ctx context.Context, matchID, playerID int64, minute int) error {
	return r.setMinuteIfNull(ctx, "minute_out", matchID, playerID, minute)
}

func (r *LineupRepository) setMinuteIfNull(ctx context.Context, column string, matchID, playerID int64, minute int) error {
	query, args, err := qb.Update("lineup_entries").
		Set(column, minute).
		Where(
			qb.Eq("match_external_id", matchID),
			qb.Eq("player_external_id", playerID),
			qb.IsNull(column),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set %s query: %w", column, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %s match=%d player=%d: %w", column, matchID, playerID, err)
	}
	return nil
}
