package postgres

import "time"

type competitionTableModel struct {
	ID               int64     `db:"id"`
	ExternalID       int64     `db:"external_id"`
	SeasonYear       int       `db:"season_year"`
	Name             string    `db:"name"`
	Gender           string    `db:"gender"`
	AgeCategory      string    `db:"age_category"`
	Tier             *int      `db:"tier"`
	ParentExternalID *int64    `db:"parent_external_id"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type competitionInsertModel struct {
	ExternalID       int64  `db:"external_id"`
	SeasonYear       int    `db:"season_year"`
	Name             string `db:"name"`
	Gender           string `db:"gender"`
	AgeCategory      string `db:"age_category"`
	Tier             *int   `db:"tier"`
	ParentExternalID *int64 `db:"parent_external_id"`
}
