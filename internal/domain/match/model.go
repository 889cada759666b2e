package match

import "time"

// Match is one fixture discovered from a competition listing page. It is
// created with identifying fields only and enriched in place by later
// scrape passes; score fields are both-nil or both-set.
type Match struct {
	ExternalID    int64
	CompetitionID int64
	SeasonYear    int
	KickoffAt     *time.Time
	Venue         string
	HomeTeamID    *int64
	AwayTeamID    *int64
	HomeScore     *int
	AwayScore     *int
}

// Played reports whether a final score has been recorded.
func (m Match) Played() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}
