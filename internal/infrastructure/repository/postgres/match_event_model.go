package postgres

import "time"

type matchEventTableModel struct {
	ID                  int64     `db:"id"`
	MatchExternalID     int64     `db:"match_external_id"`
	Sequence            int       `db:"sequence"`
	Minute              int       `db:"minute"`
	Stoppage            *int      `db:"stoppage"`
	EventType           string    `db:"event_type"`
	TeamExternalID      *int64    `db:"team_external_id"`
	PlayerExternalID    *int64    `db:"player_external_id"`
	PlayerName          string    `db:"player_name"`
	InPlayerExternalID  *int64    `db:"in_player_external_id"`
	InPlayerName        string    `db:"in_player_name"`
	OutPlayerExternalID *int64    `db:"out_player_external_id"`
	OutPlayerName       string    `db:"out_player_name"`
	Notes               string    `db:"notes"`
	RawText             string    `db:"raw_text"`
	CreatedAt           time.Time `db:"created_at"`
}

type matchEventInsertModel struct {
	MatchExternalID     int64  `db:"match_external_id"`
	Sequence            int    `db:"sequence"`
	Minute              int    `db:"minute"`
	Stoppage            *int   `db:"stoppage"`
	EventType           string `db:"event_type"`
	TeamExternalID      *int64 `db:"team_external_id"`
	PlayerExternalID    *int64 `db:"player_external_id"`
	PlayerName          string `db:"player_name"`
	InPlayerExternalID  *int64 `db:"in_player_external_id"`
	InPlayerName        string `db:"in_player_name"`
	OutPlayerExternalID *int64 `db:"out_player_external_id"`
	OutPlayerName       string `db:"out_player_name"`
	Notes               string `db:"notes"`
	RawText             string `db:"raw_text"`
}
