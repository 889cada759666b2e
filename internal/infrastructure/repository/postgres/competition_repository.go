package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/solvik/vollur/internal/domain/competition"
	qb "github.com/solvik/vollur/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) UpsertBatch(ctx context.Context, items []competition.Competition) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert competitions: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := competitionInsertModel{
			ExternalID:       item.ExternalID,
			SeasonYear:       item.SeasonYear,
			Name:             item.Name,
			Gender:           string(item.Gender),
			AgeCategory:      string(item.AgeCategory),
			Tier:             item.Tier,
			ParentExternalID: item.ParentExternalID,
		}
		query, args, err := qb.InsertModel("competitions", insertModel, `ON CONFLICT (external_id, season_year)
DO UPDATE SET
    name = EXCLUDED.name,
    gender = EXCLUDED.gender,
    age_category = EXCLUDED.age_category,
    tier = EXCLUDED.tier,
    parent_external_id = EXCLUDED.parent_external_id,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert competition query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert competition %d/%d: %w", item.ExternalID, item.SeasonYear, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert competitions tx: %w", err)
	}
	return nil
}

func (r *CompetitionRepository) List(ctx context.Context, seasonYear int) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(qb.Eq("season_year", seasonYear)).
		OrderBy("name", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromTable(row))
	}
	return out, nil
}

func (r *CompetitionRepository) GetByKey(ctx context.Context, externalID int64, seasonYear int) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(
			qb.Eq("external_id", externalID),
			qb.Eq("season_year", seasonYear),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition %d/%d: %w", externalID, seasonYear, err)
	}

	return competitionFromTable(row), true, nil
}

func competitionFromTable(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ExternalID:       row.ExternalID,
		SeasonYear:       row.SeasonYear,
		Name:             row.Name,
		Gender:           competition.Gender(row.Gender),
		AgeCategory:      competition.AgeCategory(row.AgeCategory),
		Tier:             row.Tier,
		ParentExternalID: row.ParentExternalID,
	}
}
