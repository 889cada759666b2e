package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/solvik/vollur/internal/domain/team"
	qb "github.com/solvik/vollur/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertBatch(ctx context.Context, items []team.Team, overwriteNames bool) error {
	if len(items) == 0 {
		return nil
	}

	suffix := `ON CONFLICT (external_id)
DO UPDATE SET
    name = CASE WHEN teams.name = '' THEN EXCLUDED.name ELSE teams.name END,
    updated_at = NOW()`
	if overwriteNames {
		suffix = `ON CONFLICT (external_id)
DO UPDATE SET
    name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE teams.name END,
    updated_at = NOW()`
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert teams: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		query, args, err := qb.InsertModel("teams", teamInsertModel{
			ExternalID: item.ExternalID,
			Name:       item.Name,
		}, suffix)
		if err != nil {
			return fmt.Errorf("build upsert team query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert team %d: %w", item.ExternalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert teams tx: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("external_id", externalID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team %d: %w", externalID, err)
	}

	return team.Team{ExternalID: row.ExternalID, Name: row.Name}, true, nil
}

func (r *TeamRepository) ListByExternalIDs(ctx context.Context, externalIDs []int64) ([]team.Team, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(externalIDs))
	for _, id := range externalIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("teams").
		Where(qb.In("external_id", values)).
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ExternalID: row.ExternalID, Name: row.Name})
	}
	return out, nil
}
