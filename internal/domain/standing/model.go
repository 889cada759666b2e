package standing

// Row is one line of a league table. Numeric fields the source omits
// stay nil, not zero.
type Row struct {
	CompetitionID  int64
	SeasonYear     int
	TableIndex     int
	Position       *int
	TeamID         *int64
	TeamName       string
	Played         *int
	Wins           *int
	Draws          *int
	Losses         *int
	GoalsFor       *int
	GoalsAgainst   *int
	GoalDifference *int
	Points         *int
}
