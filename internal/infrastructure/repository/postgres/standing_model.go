package postgres

import "time"

type standingRowTableModel struct {
	ID                    int64     `db:"id"`
	CompetitionExternalID int64     `db:"competition_external_id"`
	SeasonYear            int       `db:"season_year"`
	TableIndex            int       `db:"table_index"`
	Position              *int      `db:"position"`
	TeamExternalID        *int64    `db:"team_external_id"`
	TeamName              string    `db:"team_name"`
	Played                *int      `db:"played"`
	Wins                  *int      `db:"wins"`
	Draws                 *int      `db:"draws"`
	Losses                *int      `db:"losses"`
	GoalsFor              *int      `db:"goals_for"`
	GoalsAgainst          *int      `db:"goals_against"`
	GoalDifference        *int      `db:"goal_difference"`
	Points                *int      `db:"points"`
	CreatedAt             time.Time `db:"created_at"`
}

type standingRowInsertModel struct {
	CompetitionExternalID int64  `db:"competition_external_id"`
	SeasonYear            int    `db:"season_year"`
	TableIndex            int    `db:"table_index"`
	Position              *int   `db:"position"`
	TeamExternalID        *int64 `db:"team_external_id"`
	TeamName              string `db:"team_name"`
	Played                *int   `db:"played"`
	Wins                  *int   `db:"wins"`
	Draws                 *int   `db:"draws"`
	Losses                *int   `db:"losses"`
	GoalsFor              *int   `db:"goals_for"`
	GoalsAgainst          *int   `db:"goals_against"`
	GoalDifference        *int   `db:"goal_difference"`
	Points                *int   `db:"points"`
}
