package postgres

import "time"

type lineupEntryTableModel struct {
	ID               int64     `db:"id"`
	MatchExternalID  int64     `db:"match_external_id"`
	Side             string    `db:"side"`
	Squad            string    `db:"squad"`
	SlotIndex        int       `db:"slot_index"`
	TeamExternalID   int64     `db:"team_external_id"`
	PlayerExternalID *int64    `db:"player_external_id"`
	PlayerName       string    `db:"player_name"`
	ShirtNumber      *int      `db:"shirt_number"`
	Goalkeeper       bool      `db:"is_goalkeeper"`
	MinuteIn         *int      `db:"minute_in"`
	MinuteOut        *int      `db:"minute_out"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type lineupEntryInsertModel struct {
	MatchExternalID  int64  `db:"match_external_id"`
	Side             string `db:"side"`
	Squad            string `db:"squad"`
	SlotIndex        int    `db:"slot_index"`
	TeamExternalID   int64  `db:"team_external_id"`
	PlayerExternalID *int64 `db:"player_external_id"`
	PlayerName       string `db:"player_name"`
	ShirtNumber      *int   `db:"shirt_number"`
	Goalkeeper       bool   `db:"is_goalkeeper"`
	MinuteIn         *int   `db:"minute_in"`
	MinuteOut        *int   `db:"minute_out"`
}
