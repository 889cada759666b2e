package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/solvik/vollur/internal/domain/matchevent"
	qb "github.com/solvik/vollur/internal/platform/querybuilder"
)

type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

// ReplaceByMatch swaps the whole timeline of one match inside a tx.
// Sequence indices only make sense as a complete set, so a partial
// upsert is never attempted.
func (r *MatchEventRepository) ReplaceByMatch(ctx context.Context, matchID int64, items []matchevent.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace match events: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("match_external_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear match events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear match events: %w", err)
	}

	for _, item := range items {
		insertModel := matchEventInsertModel{
			MatchExternalID:     matchID,
			Sequence:            item.Sequence,
			Minute:              item.Minute,
			Stoppage:            item.Stoppage,
			EventType:           string(item.Type),
			TeamExternalID:      item.TeamID,
			PlayerExternalID:    item.PlayerID,
			PlayerName:          item.PlayerName,
			InPlayerExternalID:  item.InPlayerID,
			InPlayerName:        item.InPlayerName,
			OutPlayerExternalID: item.OutPlayerID,
			OutPlayerName:       item.OutPlayerName,
			Notes:               item.Notes,
			RawText:             item.Raw,
		}
		query, args, err := qb.InsertModel("match_events", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert match event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match event match=%d seq=%d: %w", matchID, item.Sequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace match events tx: %w", err)
	}
	return nil
}

func (r *MatchEventRepository) ListByMatch(ctx context.Context, matchID int64) ([]matchevent.Event, error) {
	query, args, err := qb.Select("*").From("match_events").
		Where(qb.Eq("match_external_id", matchID)).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}

	out := make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchevent.Event{
			MatchID:       row.MatchExternalID,
			Sequence:      row.Sequence,
			Minute:        row.Minute,
			Stoppage:      row.Stoppage,
			Type:          matchevent.Type(row.EventType),
			TeamID:        row.TeamExternalID,
			PlayerID:      row.PlayerExternalID,
			PlayerName:    row.PlayerName,
			InPlayerID:    row.InPlayerExternalID,
			InPlayerName:  row.InPlayerName,
			OutPlayerID:   row.OutPlayerExternalID,
			OutPlayerName: row.OutPlayerName,
			Notes:         row.Notes,
			Raw:           row.RawText,
		})
	}
	return out, nil
}
