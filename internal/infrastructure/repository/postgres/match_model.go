package postgres

import "time"

type matchTableModel struct {
	ID                    int64      `db:"id"`
	ExternalID            int64      `db:"external_id"`
	CompetitionExternalID int64      `db:"competition_external_id"`
	SeasonYear            int        `db:"season_year"`
	KickoffAt             *time.Time `db:"kickoff_at"`
	Venue                 string     `db:"venue"`
	HomeTeamID            *int64     `db:"home_team_external_id"`
	AwayTeamID            *int64     `db:"away_team_external_id"`
	HomeScore             *int       `db:"home_score"`
	AwayScore             *int       `db:"away_score"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

type matchInsertModel struct {
	ExternalID            int64      `db:"external_id"`
	CompetitionExternalID int64      `db:"competition_external_id"`
	SeasonYear            int        `db:"season_year"`
	KickoffAt             *time.Time `db:"kickoff_at"`
	Venue                 string     `db:"venue"`
	HomeTeamID            *int64     `db:"home_team_external_id"`
	AwayTeamID            *int64     `db:"away_team_external_id"`
	HomeScore             *int       `db:"home_score"`
	AwayScore             *int       `db:"away_score"`
}
